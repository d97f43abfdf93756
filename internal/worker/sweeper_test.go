package worker_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"claimdesk.app/server/internal/worker"
)

var _ = Describe("Sweeper", func() {
	It("sweeps on start and on every tick", func() {
		reminders := &mockReminders{}
		purger := &mockPurger{}
		s := worker.NewSweeper(reminders, purger, worker.SweeperConfig{
			Interval:    10 * time.Millisecond,
			RemindAfter: 72 * time.Hour,
		})

		before := time.Now()
		go s.Run(context.Background())

		Eventually(func() int { return len(reminders.calls()) }).Should(BeNumerically(">=", 2))
		s.Stop()

		first := reminders.calls()[0]
		Expect(first).To(BeTemporally("~", before.Add(-72*time.Hour), time.Second))
		Expect(purger.calls()).To(BeNumerically(">=", 2))
	})

	It("works without a session purger", func() {
		reminders := &mockReminders{}
		s := worker.NewSweeper(reminders, nil, worker.SweeperConfig{Interval: time.Hour, RemindAfter: time.Hour})

		go s.Run(context.Background())
		Eventually(func() int { return len(reminders.calls()) }).Should(Equal(1))
		s.Stop()
	})
})
