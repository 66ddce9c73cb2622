package domain

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validate checks that the connection settings are usable for building a
// content client. Space is not required: commands that address pages by
// id never need it.
func (s ConfluenceSettings) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.BaseURL, validation.Required, is.URL),
		validation.Field(&s.Username, validation.Required),
		validation.Field(&s.APIToken, validation.Required),
		validation.Field(&s.Timeout, validation.Min(0).Error("must not be negative")),
		validation.Field(&s.RateLimit, validation.Min(0.0).Error("must not be negative")),
	)
	if err != nil {
		return fmt.Errorf("%w: confluence: %w", ErrNotConfigured, err)
	}
	return nil
}

// ValidateForPublish additionally requires a target space.
func (s ConfluenceSettings) ValidateForPublish() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(s.Space, validation.Required); err != nil {
		return fmt.Errorf("%w: confluence: space: %w", ErrNotConfigured, err)
	}
	return nil
}
