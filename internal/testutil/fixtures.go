// Package testutil provides source document fixtures shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/splice/internal/config"
)

// Fixture is a set of source documents written to a temp directory.
type Fixture struct {
	Dir    string
	Shell  string
	Draft  string
	Legacy string

	// Output is a path inside Dir that does not exist yet.
	Output string
}

// WriteFixture writes shell, draft and legacy into a fresh temp directory.
func WriteFixture(t *testing.T, shell, draft, legacy string) *Fixture {
	t.Helper()
	dir := t.TempDir()
	f := &Fixture{
		Dir:    dir,
		Shell:  filepath.Join(dir, "index_new.html"),
		Draft:  filepath.Join(dir, "prototype-layout.html"),
		Legacy: filepath.Join(dir, "index.html.backup"),
		Output: filepath.Join(dir, "index.html"),
	}
	for path, content := range map[string]string{f.Shell: shell, f.Draft: draft, f.Legacy: legacy} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", path, err)
		}
	}
	return f
}

// WriteSentinel creates the output file with content so tests can check
// that a failed run leaves it alone.
func (f *Fixture) WriteSentinel(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(f.Output, []byte(content), 0644); err != nil {
		t.Fatalf("writing sentinel: %v", err)
	}
}

// ReadOutput returns the output file content.
func (f *Fixture) ReadOutput(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.Output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

// Minimal documents: the smallest inputs that exercise every step.
const (
	MinimalShell  = "<html><body class=\"x\">\n</html>"
	MinimalDraft  = "<body class=\"x\">\nSTART\nMARKER\nEND\n</body>"
	MinimalLegacy = "<div>A</div>\n<div>B</div>\n<script>\nfunction a() {}\n</script>\n"
)

// MinimalConfig matches the Minimal documents. It has no filter rules.
func MinimalConfig() *config.Config {
	return &config.Config{
		ShellAnchor:     `<body class="x">`,
		DraftStart:      "START",
		DraftEnd:        "END",
		DraftAnchor:     "MARKER",
		LegacyRange:     []int{1, 2},
		ScriptStart:     "<script>",
		ScriptEnd:       "</script>",
		ScriptInclusive: true,
		Closing:         "</body>\n</html>",
	}
}

// Plugin page documents: a small copy of the component-entry page layout.
const (
	PluginShell = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>Component Entry</title>
<link rel="stylesheet" href="styles.css">
</head>
<body class="state-no-selection">
<!-- generated placeholder -->
</body>
</html>
`

	PluginDraft = `<!DOCTYPE html>
<html>
<head><title>prototype</title></head>
<body class="state-no-selection">
<div class="group-3">
  <div class="edit-mode-buttons">
    <button id="edit-btn">Edit</button>
  </div>
  <!-- JavaScript桥接状态显示 -->
  <div id="bridge-status"></div>
</div>
</body>
</html>
`

	PluginLegacy = `<html>
<body>
<div id="ifc-properties-content" class="tab-content">
  <h3>IFC Properties</h3>
  <table id="ifc-table"></table>
</div>
<script type="text/javascript">
let currentElementGuid = null;
let currentPhotoPaths = [];
// tab handling
function switchTab(name) {
    document.querySelectorAll('.tab').forEach(function (t) {
        t.classList.toggle('active', t.id === name);
    });
}
document.getElementById('componentinfo-tab').addEventListener('click', () => switchTab('componentinfo'));
document.getElementById('ifc-properties-tab').addEventListener('click', () => switchTab('ifc-properties'));
function showVersion(v) {
    document.getElementById('summary-version').textContent = v;
}
</script>
</body>
</html>
`
)

// PluginConfig is the default configuration with the legacy range moved to
// the plugin fixture's data block.
func PluginConfig() *config.Config {
	cfg := config.Default()
	cfg.LegacyRange = []int{3, 6}
	return cfg
}
