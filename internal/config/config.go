// Package config holds the markers and transformation rules that drive a
// composition run.
//
// Default returns the compiled-in values for the legacy plugin page. A YAML
// or CUE file can override any subset of them; fields a file does not set
// keep their defaults.
package config

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed boilerplate.js
var defaultBoilerplate string

// Rename is a literal text replacement.
type Rename struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Config controls every marker lookup and transformation of a run.
type Config struct {
	// ShellAnchor is the structural tag in the shell. The shell is kept up
	// to and including this line.
	ShellAnchor string `yaml:"shellAnchor" json:"shellAnchor"`

	// DraftStart and DraftEnd bound the draft content fragment (exclusive).
	DraftStart string `yaml:"draftStart" json:"draftStart"`
	DraftEnd   string `yaml:"draftEnd" json:"draftEnd"`

	// DraftAnchor is the line inside the draft content before which the
	// legacy data fragment is injected.
	DraftAnchor string `yaml:"draftAnchor" json:"draftAnchor"`

	// LegacyRange is the 1-indexed inclusive [first, last] line range of the
	// legacy data fragment. Used when LegacyStart/LegacyEnd are empty.
	LegacyRange []int `yaml:"legacyRange,flow" json:"legacyRange,omitempty"`

	// LegacyStart and LegacyEnd bound the legacy data fragment (exclusive).
	// When both are set they take precedence over LegacyRange.
	LegacyStart string `yaml:"legacyStart,omitempty" json:"legacyStart,omitempty"`
	LegacyEnd   string `yaml:"legacyEnd,omitempty" json:"legacyEnd,omitempty"`

	// DataRenames rewrite the legacy data fragment, in order.
	DataRenames []Rename `yaml:"dataRenames" json:"dataRenames"`

	// ScriptStart and ScriptEnd bound the legacy behavior fragment.
	ScriptStart string `yaml:"scriptStart" json:"scriptStart"`
	ScriptEnd   string `yaml:"scriptEnd" json:"scriptEnd"`

	// ScriptInclusive keeps the script tag lines in the fragment.
	ScriptInclusive bool `yaml:"scriptInclusive" json:"scriptInclusive"`

	// RemoveBlockMarkers name function blocks dropped from the script.
	RemoveBlockMarkers []string `yaml:"removeBlockMarkers" json:"removeBlockMarkers"`

	// RemoveLineSubstrings drop any script line containing one of them.
	RemoveLineSubstrings []string `yaml:"removeLineSubstrings" json:"removeLineSubstrings"`

	// RenameRules rewrite the script after removals, in order.
	RenameRules []Rename `yaml:"renameRules" json:"renameRules"`

	// Boilerplate is the generated code injected into the script.
	Boilerplate string `yaml:"boilerplate" json:"boilerplate"`

	// BoilerplateFile replaces Boilerplate with the file content. Relative
	// paths resolve against the config file directory.
	BoilerplateFile string `yaml:"boilerplateFile,omitempty" json:"boilerplateFile,omitempty"`

	// InsertBefore are line prefixes marking where Boilerplate goes.
	InsertBefore []string `yaml:"insertBefore" json:"insertBefore"`

	// Closing is appended after the script.
	Closing string `yaml:"closing" json:"closing"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		ShellAnchor: `<body class="state-no-selection">`,
		DraftStart:  `<body class="state-no-selection">`,
		DraftEnd:    `</body>`,
		DraftAnchor: `JavaScript桥接状态显示`,
		LegacyRange: []int{684, 719},
		DataRenames: []Rename{
			{From: `id="ifc-properties-content" class="tab-content"`, To: `class="ifc-properties-section"`},
			{From: `tab-content`, To: ``},
		},
		ScriptStart:          `<script type="text/javascript">`,
		ScriptEnd:            `</script>`,
		ScriptInclusive:      true,
		RemoveBlockMarkers:   []string{"function switchTab"},
		RemoveLineSubstrings: []string{"componentinfo-tab", "ifc-properties-tab"},
		RenameRules: []Rename{
			{From: "summary-version", To: "version-display"},
		},
		Boilerplate:  defaultBoilerplate,
		InsertBefore: []string{"function ", "//"},
		Closing:      "</body>\n</html>",
	}
}

// UsesLegacyMarkers reports whether the legacy data fragment is located by
// markers rather than by line range.
func (c *Config) UsesLegacyMarkers() bool {
	return c.LegacyStart != "" && c.LegacyEnd != ""
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
	Path    string // config file, if any
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that every required marker is present and that the legacy
// data fragment is addressable.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"shellAnchor", c.ShellAnchor},
		{"draftStart", c.DraftStart},
		{"draftEnd", c.DraftEnd},
		{"draftAnchor", c.DraftAnchor},
		{"scriptStart", c.ScriptStart},
		{"scriptEnd", c.ScriptEnd},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigError{Field: r.field, Message: "marker is required"}
		}
	}

	if (c.LegacyStart == "") != (c.LegacyEnd == "") {
		return &ConfigError{Field: "legacyStart", Message: "legacyStart and legacyEnd must be set together"}
	}
	if !c.UsesLegacyMarkers() {
		if len(c.LegacyRange) != 2 {
			return &ConfigError{Field: "legacyRange", Message: fmt.Sprintf("expected [first, last], got %d values", len(c.LegacyRange))}
		}
		if c.LegacyRange[0] < 1 || c.LegacyRange[0] > c.LegacyRange[1] {
			return &ConfigError{Field: "legacyRange", Message: fmt.Sprintf("invalid range %v", c.LegacyRange)}
		}
	}

	for i, r := range c.DataRenames {
		if r.From == "" {
			return &ConfigError{Field: fmt.Sprintf("dataRenames[%d].from", i), Message: "must not be empty"}
		}
	}
	for i, r := range c.RenameRules {
		if r.From == "" {
			return &ConfigError{Field: fmt.Sprintf("renameRules[%d].from", i), Message: "must not be empty"}
		}
	}
	return nil
}
