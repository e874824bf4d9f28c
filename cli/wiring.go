package cli

import (
	"fmt"

	"github.com/CrestNiraj12/tootspan/app"
	"github.com/CrestNiraj12/tootspan/infra/auth"
	"github.com/CrestNiraj12/tootspan/infra/config"
	"github.com/CrestNiraj12/tootspan/infra/mastodon"
	"github.com/CrestNiraj12/tootspan/infra/retry"
	"github.com/CrestNiraj12/tootspan/render"
)

// buildServices wires the Mastodon client and the services on top of it
// from a loaded config.
func buildServices(cfg config.Config) (app.AccountService, app.StatusSource) {
	provider := auth.ProviderFor(cfg.Token, cfg.TokenPath)

	opts := []mastodon.ClientOption{mastodon.WithTimeout(cfg.HTTPTimeout)}
	if cfg.RetryAttempts > 1 {
		rc := retry.DefaultConfig()
		rc.Attempts = cfg.RetryAttempts
		opts = append(opts, mastodon.WithRetry(rc))
	}

	client := mastodon.NewClient(cfg.InstanceURL, provider, opts...)
	return mastodon.NewAccountService(client), mastodon.NewStatusService(client, cfg.PageLimit)
}

func resolveFormatter(format string) (render.Formatter, error) {
	switch format {
	case "json":
		return render.NewJSON(), nil
	case "text", "":
		return render.NewText(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
