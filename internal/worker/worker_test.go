package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/worker"
)

var _ = Describe("Worker", func() {
	var (
		ctx      context.Context
		cancel   context.CancelFunc
		consumer *mockConsumer
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		consumer = &mockConsumer{}
	})

	AfterEach(func() {
		cancel()
	})

	run := func(w *worker.Worker) chan error {
		done := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			done <- w.Run(ctx)
		}()
		return done
	}

	msg := func(id string, attempt int) queue.Message {
		return queue.Message{ID: id, TaskType: queue.TaskTypeBlobCleanup, ClaimID: 1, Attempt: attempt}
	}

	It("acknowledges handled messages", func() {
		var handled []string
		consumer.batches = [][]queue.Message{{msg("1-0", 1), msg("2-0", 1)}}
		w := worker.New(consumer, map[queue.TaskType]worker.TaskHandler{
			queue.TaskTypeBlobCleanup: handlerFunc(func(_ context.Context, m queue.Message) error {
				handled = append(handled, m.ID)
				return nil
			}),
		}, worker.Config{MaxAttempts: 3})

		done := run(w)
		Eventually(func() []string { a, _, _ := consumer.snapshot(); return a }).Should(Equal([]string{"1-0", "2-0"}))
		w.Stop()
		Eventually(done).Should(Receive(BeNil()))
		Expect(handled).To(Equal([]string{"1-0", "2-0"}))
	})

	It("requeues failures until attempts run out, then dead-letters", func() {
		consumer.batches = [][]queue.Message{{msg("1-0", 1), msg("2-0", 3)}}
		w := worker.New(consumer, map[queue.TaskType]worker.TaskHandler{
			queue.TaskTypeBlobCleanup: handlerFunc(func(context.Context, queue.Message) error {
				return errors.New("s3 unavailable")
			}),
		}, worker.Config{MaxAttempts: 3})

		done := run(w)
		Eventually(func() []string { _, _, d := consumer.snapshot(); return d }).Should(Equal([]string{"2-0"}))
		w.Stop()
		Eventually(done).Should(Receive())

		acked, requeued, _ := consumer.snapshot()
		Expect(requeued).To(Equal([]string{"1-0"}))
		Expect(acked).To(BeEmpty())
	})

	It("recovers from handler panics", func() {
		consumer.batches = [][]queue.Message{{msg("1-0", 1)}}
		w := worker.New(consumer, map[queue.TaskType]worker.TaskHandler{
			queue.TaskTypeBlobCleanup: handlerFunc(func(context.Context, queue.Message) error {
				panic("boom")
			}),
		}, worker.Config{MaxAttempts: 3})

		done := run(w)
		Eventually(func() []string { _, r, _ := consumer.snapshot(); return r }).Should(Equal([]string{"1-0"}))
		w.Stop()
		Eventually(done).Should(Receive())
	})

	It("acknowledges tasks without a handler", func() {
		consumer.batches = [][]queue.Message{{{ID: "9-0", TaskType: "unknown", Attempt: 1}}}
		w := worker.New(consumer, nil, worker.Config{MaxAttempts: 3})

		done := run(w)
		Eventually(func() []string { a, _, _ := consumer.snapshot(); return a }).Should(Equal([]string{"9-0"}))
		w.Stop()
		Eventually(done).Should(Receive())
	})

	It("returns when the context is cancelled", func() {
		w := worker.New(consumer, nil, worker.Config{MaxAttempts: 3})
		done := run(w)

		cancel()
		Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
	})
})
