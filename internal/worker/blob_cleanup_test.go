package worker_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/worker"
)

var _ = Describe("BlobCleanupHandler", func() {
	var (
		ctx     context.Context
		storage *blob.LocalStorage
		handler *worker.BlobCleanupHandler
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		storage, err = blob.NewLocalStorage(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		handler = worker.NewBlobCleanupHandler(storage)
	})

	put := func(key string) {
		body := []byte("%PDF-1.4")
		Expect(storage.Put(ctx, key, bytes.NewReader(body), int64(len(body)), "application/pdf")).To(Succeed())
	}

	It("deletes every key and tolerates ones already gone", func() {
		put("claims/1/INT-00001_aaaaaaaaaa.pdf")
		put("claims/1/INT-00001_bbbbbbbbbb.pdf")

		err := handler.Handle(ctx, queue.Message{
			TaskType: queue.TaskTypeBlobCleanup,
			ClaimID:  1,
			StorageKeys: []string{
				"claims/1/INT-00001_aaaaaaaaaa.pdf",
				"claims/1/INT-00001_bbbbbbbbbb.pdf",
				"claims/1/INT-00001_cccccccccc.pdf",
			},
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = storage.Open(ctx, "claims/1/INT-00001_aaaaaaaaaa.pdf")
		Expect(err).To(MatchError(blob.ErrNotFound))
	})

	It("skips keys that could never be deleted", func() {
		err := handler.Handle(ctx, queue.Message{StorageKeys: []string{"../etc/passwd", ""}})
		Expect(err).NotTo(HaveOccurred())
	})
})
