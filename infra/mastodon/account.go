package mastodon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/CrestNiraj12/tootspan/app"
	"github.com/CrestNiraj12/tootspan/domain"
)

// accountService implements app.AccountService using the Mastodon API.
type accountService struct {
	client   *Client
	cachedID string // Account ID after the first successful fetch.
}

// NewAccountService creates an AccountService backed by Mastodon.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

func (s *accountService) CurrentAccountID(ctx context.Context) (string, error) {
	if s.cachedID != "" {
		return s.cachedID, nil
	}
	profile, err := s.CurrentProfile(ctx)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (s *accountService) CurrentProfile(ctx context.Context) (app.Profile, error) {
	data, err := s.client.Get(ctx, "/api/v1/accounts/verify_credentials")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return app.Profile{}, fmt.Errorf("verifying credentials: %w", domain.ErrUnauthorized)
		}
		return app.Profile{}, fmt.Errorf("fetching account: %w", err)
	}

	var acct struct {
		ID            string `json:"id"`
		Acct          string `json:"acct"`
		DisplayName   string `json:"display_name"`
		StatusesCount int    `json:"statuses_count"`
	}
	if err := json.Unmarshal(data, &acct); err != nil {
		return app.Profile{}, fmt.Errorf("parsing account: %w", err)
	}
	if acct.ID == "" {
		return app.Profile{}, fmt.Errorf("parsing account: response carries no id")
	}

	s.cachedID = acct.ID
	return app.Profile{
		ID:            acct.ID,
		Acct:          sanitizeForTerminal(acct.Acct),
		DisplayName:   sanitizeForTerminal(acct.DisplayName),
		StatusesCount: acct.StatusesCount,
	}, nil
}
