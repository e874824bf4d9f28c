package app

import (
	"context"

	"github.com/CrestNiraj12/tootspan/domain"
)

// Profile describes the authenticated account.
type Profile struct {
	ID            string
	Acct          string
	DisplayName   string
	StatusesCount int
}

// AccountService provides information about the authenticated account.
type AccountService interface {
	// CurrentAccountID returns the account ID of the authenticated account.
	CurrentAccountID(ctx context.Context) (string, error)

	// CurrentProfile returns the authenticated account's profile.
	CurrentProfile(ctx context.Context) (Profile, error)
}

// StatusSource fetches pages of an account's own statuses, newest first.
type StatusSource interface {
	// Page returns one page of statuses older than maxID. An empty maxID
	// requests the newest page. An empty result page marks the end of the
	// account's history.
	Page(ctx context.Context, accountID, maxID string) (domain.StatusPage, error)
}
