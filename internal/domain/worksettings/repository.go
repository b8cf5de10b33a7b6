package worksettings

import "context"

type WorkSettingsRepository interface {
	// Get returns the current global work settings, or Defaults() when
	// nothing has been seeded.
	Get(ctx context.Context) (WorkSettings, error)
}
