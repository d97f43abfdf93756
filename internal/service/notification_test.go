package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/upload"
)

var _ = Describe("NotificationService", func() {
	var (
		ctx    context.Context
		db     *memDB
		claims service.ClaimService
		svc    service.NotificationService
		owner  model.Actor
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		ctx = context.Background()
		db = newMemDB()
		owner = model.Actor{UserID: 7}
		claims = service.NewClaimService(db.Claims(), db.Comments(), db.Attachments(), db, newMemBlobs(), nil, upload.NewValidator(0, nil))
		svc = service.NewNotificationService(db.Notifications())
	})

	It("lists newest first and filters unread", func() {
		res, err := claims.Create(ctx, owner, billingInput(), nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = claims.AddComment(ctx, owner, res.Claim.ID, "hello")
		Expect(err).NotTo(HaveOccurred())

		all, err := svc.List(ctx, owner, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
		Expect(all[0].Type).To(Equal(model.NotificationTypeResponseReceived))

		_, err = svc.MarkRead(ctx, owner, all[0].ID)
		Expect(err).NotTo(HaveOccurred())

		unread, err := svc.List(ctx, owner, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(unread).To(HaveLen(1))
		Expect(unread[0].Type).To(Equal(model.NotificationTypeStatusUpdate))

		count, err := svc.CountUnread(ctx, owner)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(1)))
	})

	It("marks read idempotently", func() {
		res, err := claims.Create(ctx, owner, billingInput(), nil)
		Expect(err).NotTo(HaveOccurred())
		n := db.notificationsFor(owner.UserID)[0]
		Expect(n.ClaimID).To(Equal(res.Claim.ID))

		first, err := svc.MarkRead(ctx, owner, n.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Read).To(BeTrue())

		second, err := svc.MarkRead(ctx, owner, n.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Read).To(BeTrue())
	})

	It("hides notifications of other users", func() {
		_, err := claims.Create(ctx, owner, billingInput(), nil)
		Expect(err).NotTo(HaveOccurred())
		n := db.notificationsFor(owner.UserID)[0]

		_, err = svc.MarkRead(ctx, model.Actor{UserID: 8}, n.ID)
		Expect(err).To(MatchError(service.ErrNotificationNotFound))
		Expect(db.notificationsFor(owner.UserID)[0].Read).To(BeFalse())
	})

	It("wraps store failures", func() {
		boom := errors.New("connection reset")
		svc = service.NewNotificationService(&mockNotificationStore{
			markReadFn: func(context.Context, int64, int64) (*model.Notification, error) { return nil, boom },
		})

		_, err := svc.MarkRead(ctx, owner, 1)
		Expect(err).To(MatchError(boom))
		Expect(err).NotTo(MatchError(service.ErrNotificationNotFound))
	})
})
