package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driven"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBaseURL   = "confluence.base_url"
	KeyUsername  = "confluence.username"
	KeyAPIToken  = "confluence.api_token"
	KeySpace     = "confluence.space"
	KeyParentID  = "confluence.parent_id"
	KeyTimeout   = "confluence.timeout_seconds"
	KeyRateLimit = "confluence.rate_limit"
	KeyGitHub    = "github.token"
	KeyGoogle    = "google.api_key"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
)

type settingDef struct {
	key    string
	env    string
	kind   valueKind
	secret bool
}

// settingDefs lists every supported key in display order.
var settingDefs = []settingDef{
	{key: KeyBaseURL, env: "CONFREP_BASE_URL"},
	{key: KeyUsername, env: "CONFREP_USERNAME"},
	{key: KeyAPIToken, env: "CONFREP_API_TOKEN", secret: true},
	{key: KeySpace, env: "CONFREP_SPACE"},
	{key: KeyParentID, env: "CONFREP_PARENT_ID"},
	{key: KeyTimeout, env: "CONFREP_TIMEOUT", kind: kindInt},
	{key: KeyRateLimit, env: "CONFREP_RATE_LIMIT", kind: kindFloat},
	{key: KeyGitHub, env: "GITHUB_TOKEN", secret: true},
	{key: KeyGoogle, env: "GOOGLE_API_KEY", secret: true},
}

func lookupDef(key string) (settingDef, bool) {
	for _, d := range settingDefs {
		if d.key == key {
			return d, true
		}
	}
	return settingDef{}, false
}

// SettingsService resolves settings from the config store and environment.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process
// environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get resolves the effective settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	c := &settings.Confluence

	c.BaseURL = strings.TrimRight(s.resolve(KeyBaseURL), "/")
	c.Username = s.resolve(KeyUsername)
	c.APIToken = s.resolve(KeyAPIToken)
	c.Space = s.resolve(KeySpace)
	c.ParentID = s.resolve(KeyParentID)
	settings.GitHubToken = s.resolve(KeyGitHub)
	settings.GoogleAPIKey = s.resolve(KeyGoogle)

	if raw := s.resolve(KeyTimeout); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, KeyTimeout, raw)
		}
		if seconds > 0 {
			c.Timeout = time.Duration(seconds) * time.Second
		}
	}

	if raw := s.resolve(KeyRateLimit); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, KeyRateLimit, raw)
		}
		if rate > 0 {
			c.RateLimit = rate
		}
	}

	return &settings, nil
}

// Set validates and persists a single key.
func (s *SettingsService) Set(key, value string) error {
	def, ok := lookupDef(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var stored any = value
	switch def.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Entries lists every known key with its effective value and source.
func (s *SettingsService) Entries() []driving.SettingEntry {
	entries := make([]driving.SettingEntry, 0, len(settingDefs))
	for _, def := range settingDefs {
		entry := driving.SettingEntry{
			Key:    def.key,
			EnvVar: def.env,
			Secret: def.secret,
			Source: driving.SourceDefault,
		}
		if v, ok := s.env(def.env); ok {
			entry.Value = v
			entry.Source = driving.SourceEnv
		} else if v := s.fileValue(def); v != "" {
			entry.Value = v
			entry.Source = driving.SourceFile
		}
		entries = append(entries, entry)
	}
	return entries
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// resolve returns the environment value if set, else the file value.
func (s *SettingsService) resolve(key string) string {
	def, _ := lookupDef(key)
	if v, ok := s.env(def.env); ok {
		return v
	}
	return s.fileValue(def)
}

func (s *SettingsService) env(name string) (string, bool) {
	if s.lookupEnv == nil || name == "" {
		return "", false
	}
	v, ok := s.lookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// fileValue renders a stored value as a string regardless of TOML type.
func (s *SettingsService) fileValue(def settingDef) string {
	val, ok := s.configStore.Get(def.key)
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
