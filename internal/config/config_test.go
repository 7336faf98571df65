package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, `<body class="state-no-selection">`, cfg.ShellAnchor)
	assert.Equal(t, []int{684, 719}, cfg.LegacyRange)
	assert.False(t, cfg.UsesLegacyMarkers())
	assert.True(t, cfg.ScriptInclusive)
	assert.Contains(t, cfg.Boilerplate, "function updateUIState()")
	assert.Contains(t, cfg.Boilerplate, "function hasComponentInfo()")
	assert.Equal(t, "</body>\n</html>", cfg.Closing)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "splice.yaml", `
shellAnchor: "<body class=\"x\">"
legacyRange: [1, 2]
renameRules:
  - from: oldName
    to: midName
  - from: midName
    to: newName
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, `<body class="x">`, cfg.ShellAnchor)
	assert.Equal(t, []int{1, 2}, cfg.LegacyRange)
	assert.Equal(t, []Rename{{"oldName", "midName"}, {"midName", "newName"}}, cfg.RenameRules)

	// untouched fields keep defaults
	assert.Equal(t, Default().DraftAnchor, cfg.DraftAnchor)
	assert.Equal(t, Default().RemoveBlockMarkers, cfg.RemoveBlockMarkers)
}

func TestLoad_YAMLEmptyDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yml", "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLUnknownField(t *testing.T) {
	path := writeFile(t, t.TempDir(), "typo.yaml", "shellAnchr: x\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shellAnchr")
}

func TestLoad_CUE(t *testing.T) {
	path := writeFile(t, t.TempDir(), "splice.cue", `
legacyStart: "<!-- IFC START -->"
legacyEnd:   "<!-- IFC END -->"
scriptInclusive: false
removeLineSubstrings: ["tab-a", "tab-b"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UsesLegacyMarkers())
	assert.Equal(t, "<!-- IFC START -->", cfg.LegacyStart)
	assert.False(t, cfg.ScriptInclusive)
	assert.Equal(t, []string{"tab-a", "tab-b"}, cfg.RemoveLineSubstrings)
	assert.Equal(t, Default().ScriptStart, cfg.ScriptStart)
}

func TestLoad_CUESchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `shellAnchr: "x"`},
		{"empty marker", `shellAnchor: ""`},
		{"range below one", `legacyRange: [0, 3]`},
		{"range arity", `legacyRange: [1, 2, 3]`},
		{"wrong type", `scriptInclusive: "yes"`},
		{"empty rename source", `renameRules: [{from: "", to: "x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.cue", tt.content)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoad_CUESyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.cue", `shellAnchor: "x`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing CUE config")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "splice.toml", "")
	_, err := Load(path)
	require.Error(t, err)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, path, ce.Path)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BoilerplateFileRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gen"), 0755))
	writeFile(t, filepath.Join(dir, "gen"), "state.js", "function gen() {}\n")
	path := writeFile(t, dir, "splice.yaml", "boilerplateFile: gen/state.js\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "function gen() {}\n", cfg.Boilerplate)
}

func TestLoad_ValidationAddsPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "half.yaml", "legacyStart: \"<!-- A -->\"\n")
	_, err := Load(path)
	require.Error(t, err)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "legacyStart", ce.Field)
	assert.Equal(t, path, ce.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing shell anchor", func(c *Config) { c.ShellAnchor = "" }, "shellAnchor"},
		{"blank draft anchor", func(c *Config) { c.DraftAnchor = "  " }, "draftAnchor"},
		{"missing script end", func(c *Config) { c.ScriptEnd = "" }, "scriptEnd"},
		{"range arity", func(c *Config) { c.LegacyRange = []int{5} }, "legacyRange"},
		{"range reversed", func(c *Config) { c.LegacyRange = []int{9, 3} }, "legacyRange"},
		{"only legacy end", func(c *Config) { c.LegacyEnd = "x" }, "legacyStart"},
		{"empty data rename", func(c *Config) { c.DataRenames = []Rename{{From: ""}} }, "dataRenames[0].from"},
		{"empty rename", func(c *Config) { c.RenameRules = append(c.RenameRules, Rename{}) }, "renameRules[1].from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestValidate_MarkersReplaceRange(t *testing.T) {
	cfg := Default()
	cfg.LegacyRange = nil
	cfg.LegacyStart = "<!-- A -->"
	cfg.LegacyEnd = "<!-- B -->"
	assert.NoError(t, cfg.Validate())
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "shellAnchor:")
	assert.Contains(t, string(data), "legacyRange: [684, 719]")

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *Default(), back)
}

func TestMarshalKeepsBoilerplateWhitespace(t *testing.T) {
	tests := []struct {
		name        string
		boilerplate string
	}{
		{"leading blank line", "\n// x\nfunction f() {}\n"},
		{"default", Default().Boilerplate},
		{"trailing blank lines", "function f() {}\n\n\n"},
		{"indented first line", "    f();\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Boilerplate = tt.boilerplate
			data, err := Marshal(cfg)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "splice.yaml")
			require.NoError(t, os.WriteFile(path, data, 0644))
			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.boilerplate, back.Boilerplate)
			assert.Equal(t, cfg, back)
		})
	}
}
