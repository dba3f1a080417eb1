package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is matched by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", ErrInvalidConfig, strings.Join(e.Fields, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and the cross-section rules that tags
// cannot express. It never clamps; the first bad config fails the session.
func Validate(cfg Config) error {
	var fields []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w: %v", ErrInvalidConfig, err)
		}
		for _, fe := range verrs {
			fields = append(fields, describe(fe))
		}
	}

	if cfg.PowerUps.Weights.Total() <= 0 {
		fields = append(fields, "PowerUps.Weights: at least one weight must be positive")
	}
	bias := cfg.Difficulty.LengthBias
	if bias.Short+bias.Middle+bias.Long <= 0 {
		fields = append(fields, "Difficulty.LengthBias: at least one weight must be positive")
	}
	if cfg.Difficulty.MinLength+1 > cfg.Difficulty.BaseWordScore {
		fields = append(fields, "Difficulty.BaseWordScore: must leave room for the minimum length")
	}
	if cfg.WordBank.Provider == "http" && cfg.WordBank.URL == "" {
		fields = append(fields, "WordBank.URL: required when provider is http")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// describe renders a validator field error as "Section.Field: rule param".
func describe(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:] // drop the root "Config."
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: must satisfy %s=%s (got %v)", ns, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s: must satisfy %s (got %v)", ns, fe.Tag(), fe.Value())
}
