package panel

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ayoisaiah/wellcon/internal/api"
)

// Wellness loads the stored check-in. A loaded view with nil Data means no
// check-in has been stored yet.
type Wellness struct {
	loader[*api.WellnessWindow]
	dial   Dialer
	logger *slog.Logger
}

// NewWellness returns a Wellness panel.
func NewWellness(dial Dialer, logger *slog.Logger) *Wellness {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Wellness{dial: dial, logger: logger.With("panel", "wellness")}
	w.view = View[*api.WellnessWindow]{Phase: PhaseNeedsCredentials}

	return w
}

// Reload fetches the check-in with creds.
func (w *Wellness) Reload(
	ctx context.Context,
	creds Credentials,
) View[*api.WellnessWindow] {
	return w.run(ctx, creds, func(ctx context.Context) (*api.WellnessWindow, error) {
		win, err := w.dial(creds).CheckIn(ctx)
		if errors.Is(err, api.ErrNotFound) {
			w.logger.InfoContext(ctx, "no check-in stored")
			return nil, nil
		}

		return win, err
	})
}
