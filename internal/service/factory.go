package service

import (
	"claimdesk.app/server/core/config"
	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/store"
	"claimdesk.app/server/internal/upload"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	blobs     blob.Storage
	producer  queue.Producer
	validator *upload.Validator
	cfg       config.Config
}

// NewServices builds the service set. producer may be nil, in which case
// attachment bytes of deleted claims are removed inline.
func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	blobs blob.Storage,
	producer queue.Producer,
	cfg config.Config,
) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		blobs:     blobs,
		producer:  producer,
		validator: upload.NewValidator(cfg.Upload.MaxBytes, cfg.Upload.AllowedTypes),
		cfg:       cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions(), s.cfg.WorkOS, s.cfg.IsStaffEmail)
}

func (s *Services) Claims() ClaimService {
	return NewClaimService(
		s.stores.Claims(),
		s.stores.Comments(),
		s.stores.Attachments(),
		s.txRunner,
		s.blobs,
		s.producer,
		s.validator,
	)
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.stores.Notifications())
}

func (s *Services) Dashboard() DashboardService {
	return NewDashboardService(s.stores.Claims(), s.stores.Notifications())
}

func (s *Services) Reminders() ReminderService {
	return NewReminderService(s.stores.Claims(), s.txRunner)
}

func (s *Services) DashboardURL() string {
	return s.cfg.DashboardURL
}

func (s *Services) MaxUploadBytes() int64 {
	return s.validator.MaxBytes()
}
