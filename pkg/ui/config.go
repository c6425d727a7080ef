package ui

import (
	"fmt"

	"github.com/macropower/folio/pkg/keys"
)

// Config contains TUI configuration.
type Config struct {
	// KeyBinds overrides the default key binds.
	KeyBinds *KeyBinds `json:"keybinds,omitempty" jsonschema:"title=Key Binds"`
	// LineNumbers shows record numbers next to each record.
	LineNumbers *bool `json:"lineNumbers,omitempty" jsonschema:"title=Line Numbers"`
	// Wrap wraps long records instead of truncating them.
	Wrap *bool `json:"wrap,omitempty" jsonschema:"title=Wrap"`
	// Theme is a chroma style name, or one of auto, dark, light.
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
}

func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

func (c *Config) EnsureDefaults() {
	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()

	if c.LineNumbers == nil {
		lineNumbers := true
		c.LineNumbers = &lineNumbers
	}

	if c.Wrap == nil {
		wrap := false
		c.Wrap = &wrap
	}

	if c.Theme == "" {
		c.Theme = "auto"
	}
}

// Validate reports conflicting key binds.
func (c *Config) Validate() error {
	err := keys.ValidateBinds(c.KeyBinds.GetKeyBinds())
	if err != nil {
		return fmt.Errorf("keybinds: %w", err)
	}

	return nil
}
