// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gogpu/artengine/canvas"
	"github.com/gogpu/artengine/internal/blend"
	"github.com/gogpu/artengine/metadata"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		for _, e := range verrs {
			problems = append(problems, formatFieldError(e))
		}
	}
	problems = append(problems, c.crossCheck()...)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	case "gte", "gt", "lte", "lt":
		return fmt.Sprintf("%s must be %s %s", field, e.Tag(), e.Param())
	case "excludes":
		return fmt.Sprintf("%s must not contain %q", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}

func (c *Config) crossCheck() []string {
	var problems []string
	prev := 0
	for i, lc := range c.LayerConfigurations {
		if lc.GrowEditionSizeTo <= prev {
			problems = append(problems, fmt.Sprintf(
				"layerConfigurations[%d].growEditionSizeTo must exceed %d", i, prev))
		}
		prev = lc.GrowEditionSizeTo
		for j, l := range lc.LayersOrder {
			if _, err := blend.ParseMode(l.Options.Blend); err != nil {
				problems = append(problems, fmt.Sprintf(
					"layerConfigurations[%d].layersOrder[%d]: %v", i, j, err))
			}
			if o := l.Options.Opacity; o != nil && (*o < 0 || *o > 1) {
				problems = append(problems, fmt.Sprintf(
					"layerConfigurations[%d].layersOrder[%d].opacity must be within [0, 1]", i, j))
			}
		}
	}
	if _, err := canvas.ParseColor(c.Text.Color); err != nil {
		problems = append(problems, "text.color: "+err.Error())
	}
	if c.Background.Generate {
		if c.Background.Static {
			if _, err := canvas.ParseColor(c.Background.Default); err != nil {
				problems = append(problems, "background.default: "+err.Error())
			}
		} else if _, err := canvas.ParsePercent(c.Background.Brightness); err != nil {
			problems = append(problems, "background.brightness: "+err.Error())
		}
	}
	for _, kv := range c.ExtraMetadata {
		if metadata.Reserved(kv.Key) {
			problems = append(problems, fmt.Sprintf("extraMetadata.%s shadows a record field", kv.Key))
		}
	}
	if c.NetworkKind() == metadata.Solana && len(c.SolanaMetadata.Creators) > 0 {
		total := 0
		for _, cr := range c.SolanaMetadata.Creators {
			total += cr.Share
		}
		if total != 100 {
			problems = append(problems, fmt.Sprintf("solanaMetadata.creators shares sum to %d, want 100", total))
		}
	}
	return problems
}
