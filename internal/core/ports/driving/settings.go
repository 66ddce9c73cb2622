package driving

import "github.com/custodia-labs/confrep/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves settings from defaults, the config file and the
	// environment, in increasing order of precedence.
	Get() (*domain.Settings, error)

	// Set validates and persists a single key in the config file.
	Set(key, value string) error

	// Entries lists every known key with its effective value.
	Entries() []SettingEntry

	// Path returns the config file location.
	Path() string
}

// SettingSource tells where an effective setting value came from.
type SettingSource string

// Setting sources.
const (
	SourceDefault SettingSource = "default"
	SourceFile    SettingSource = "file"
	SourceEnv     SettingSource = "env"
)

// SettingEntry is one row of "config show".
type SettingEntry struct {
	Key    string
	Value  string
	Source SettingSource

	// EnvVar overrides the file value when set.
	EnvVar string

	// Secret values must be masked before display.
	Secret bool
}
