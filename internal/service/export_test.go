package service

import (
	"context"
	"time"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"claimdesk.app/server/core/config"
	"claimdesk.app/server/internal/store"
)

// NewAuthServiceWith replaces the WorkOS code exchange and the clock.
func NewAuthServiceWith(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	isStaff func(email string) bool,
	authenticate func(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error),
	now func() time.Time,
) AuthService {
	svc := NewAuthService(userStore, sessionStore, config.WorkOSConfig{ClientID: "client_test"}, isStaff).(*authService)
	svc.authenticate = authenticate
	svc.now = now
	return svc
}
