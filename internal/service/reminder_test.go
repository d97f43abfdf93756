package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/upload"
)

var _ = Describe("ReminderService", func() {
	var (
		ctx    context.Context
		db     *memDB
		claims service.ClaimService
		svc    service.ReminderService
		owner  model.Actor
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		ctx = context.Background()
		db = newMemDB()
		owner = model.Actor{UserID: 11}
		claims = service.NewClaimService(db.Claims(), db.Comments(), db.Attachments(), db, newMemBlobs(), nil, upload.NewValidator(0, nil))
		svc = service.NewReminderService(db.Claims(), db)
	})

	reminders := func() int {
		var n int
		for _, notif := range db.notificationsFor(owner.UserID) {
			if notif.Type == model.NotificationTypeReminder {
				n++
			}
		}
		return n
	}

	It("reminds once per stale pending claim", func() {
		stale, err := claims.Create(ctx, owner, billingInput(), nil)
		Expect(err).NotTo(HaveOccurred())
		fresh, err := claims.Create(ctx, owner, billingInput(), nil)
		Expect(err).NotTo(HaveOccurred())
		resolved, err := claims.Create(ctx, owner, billingInput(), nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = claims.ChangeStatus(ctx, owner, resolved.Claim.ID, model.ClaimStatusResolved)
		Expect(err).NotTo(HaveOccurred())

		old := time.Now().Add(-100 * time.Hour)
		db.backdate(stale.Claim.ID, old)
		db.backdate(resolved.Claim.ID, old)
		Expect(fresh.Claim.ID).NotTo(BeZero())

		cutoff := time.Now().Add(-72 * time.Hour)
		sent, err := svc.SendReminders(ctx, cutoff)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(Equal(1))
		Expect(reminders()).To(Equal(1))

		sent, err = svc.SendReminders(ctx, cutoff)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(BeZero())
		Expect(reminders()).To(Equal(1))
	})
})
