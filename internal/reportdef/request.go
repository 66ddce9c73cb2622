package reportdef

import (
	"github.com/custodia-labs/confrep/internal/core/domain"
	"github.com/custodia-labs/confrep/internal/core/ports/driving"
)

// Overrides are caller choices that take precedence over the definition.
// Zero values defer to the definition, then to the configured defaults.
type Overrides struct {
	Space    string
	ParentID string
	Policy   domain.OverwritePolicy
	Mode     domain.UpdateMode
}

// Request builds the publish request for def from resolved units.
// Placement falls back from overrides to the definition to defaults.
// Policy and mode fall back to fallback when neither overrides nor the
// definition name one.
func (d *Definition) Request(
	units []domain.ContentUnit,
	defaults domain.ConfluenceSettings,
	o Overrides,
	fallback domain.OverwritePolicy,
) driving.PublishRequest {
	return driving.PublishRequest{
		Space:    first(o.Space, d.Space, defaults.Space),
		Title:    d.Title,
		ParentID: first(o.ParentID, d.ParentID, defaults.ParentID),
		Units:    units,
		Policy:   domain.OverwritePolicy(first(string(o.Policy), d.Overwrite, string(fallback))),
		Mode:     domain.UpdateMode(first(string(o.Mode), d.Mode, string(domain.ModeReplace))),
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
