package claymark

import (
	"os"

	"github.com/BurntSushi/toml"
)

// EngineConfig is the process-start configuration a host can load once and
// hand to NewLayoutEngine, instead of hand-tuning ArenaBudget fields and
// viewport mode at every call site (spec §4.1a/§14). Reloaded only at
// process start, never per frame, the way the teacher loads its own theme
// file once in app.go rather than per render.
type EngineConfig struct {
	Arena   ArenaConfig   `toml:"arena"`
	Debug   bool          `toml:"debug"`
	Theme   ThemeConfig   `toml:"theme"`
	Display DisplayConfig `toml:"display"`
}

// ArenaConfig mirrors ArenaBudget with TOML-friendly field names; zero
// values mean "use DefaultArenaBudget for this field".
type ArenaConfig struct {
	MaxElements  int `toml:"max_elements"`
	MaxTextBytes int `toml:"max_text_bytes"`
	MaxCommands  int `toml:"max_commands"`
}

// ThemeConfig names a set of default colors a host can read through
// ResolveTheme, grounded on the teacher's own theme.go (a struct of named
// Color fields loaded once at startup). cmd/demo does not read it.
type ThemeConfig struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Accent     string `toml:"accent"`
	Border     string `toml:"border"`
}

// DisplayConfig carries the viewport defaults cmd/demo starts with absent
// a terminal resize event yet.
type DisplayConfig struct {
	Fullscreen bool `toml:"fullscreen"`
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
}

// LoadEngineConfig reads a TOML configuration file from path. A missing
// file is not an error — it returns the zero EngineConfig, which
// ResolveArenaBudget/ResolveTheme treat as "use defaults", since a fresh
// checkout of a host program shouldn't fail to start just because nobody's
// written a config file yet.
func LoadEngineConfig(path string) (EngineConfig, error) {
	var cfg EngineConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// ResolveArenaBudget returns cfg's arena sizing, falling back field-by-field
// to DefaultArenaBudget for anything left at zero.
func (cfg EngineConfig) ResolveArenaBudget() ArenaBudget {
	b := DefaultArenaBudget
	if cfg.Arena.MaxElements > 0 {
		b.MaxElements = cfg.Arena.MaxElements
	}
	if cfg.Arena.MaxTextBytes > 0 {
		b.MaxTextBytes = cfg.Arena.MaxTextBytes
	}
	if cfg.Arena.MaxCommands > 0 {
		b.MaxCommands = cfg.Arena.MaxCommands
	}
	return b
}

// ResolveTheme parses cfg's theme colors, silently keeping the zero Color
// (transparent) for any entry that's missing or fails to parse — a theme
// file is a convenience default, not a contract a malformed value should be
// able to crash startup over.
func (cfg EngineConfig) ResolveTheme() (background, foreground, accent, border Color) {
	parse := func(s string) Color {
		c, err := ParseColor(s)
		if err != nil {
			return Color{}
		}
		return c
	}
	return parse(cfg.Theme.Background), parse(cfg.Theme.Foreground), parse(cfg.Theme.Accent), parse(cfg.Theme.Border)
}
