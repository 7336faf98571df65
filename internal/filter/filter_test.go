package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/splice/internal/lines"
)

func TestRemoveBlock_NestedBraces(t *testing.T) {
	frag := lines.FragmentOf(`let a = 1;
function switchTab(name) {
    if (name) {
        show(name);
    }
}
function keep() {
}
`)

	out, err := RemoveBlock{Marker: "function switchTab"}.Apply(frag)
	require.NoError(t, err)

	assert.Equal(t, frag.Len()-5, out.Len(), "exactly the 5 block lines are removed")
	assert.Equal(t, lines.Fragment{"let a = 1;\n", "function keep() {\n", "}\n"}, out)
}

func TestRemoveBlock_SingleLine(t *testing.T) {
	frag := lines.FragmentOf("function f() { return 1; }\nnext();\n")
	out, err := RemoveBlock{Marker: "function f"}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{"next();\n"}, out)
}

func TestRemoveBlock_TriggerWithoutBraces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want lines.Fragment
	}{
		{
			name: "comment mentioning the marker",
			in:   "// function switchTab was retired\nfunction keep() {\n  go();\n}\nafter();\n",
			want: lines.Fragment{"function keep() {\n", "  go();\n", "}\n", "after();\n"},
		},
		{
			name: "reference in a call",
			in:   "x.on('click', function switchTabs)\nlast();\n",
			want: lines.Fragment{"last();\n"},
		},
		{
			name: "brace on next line is not part of the block",
			in:   "function switchTab()\n{\n}\n",
			want: lines.Fragment{"{\n", "}\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RemoveBlock{Marker: "function switchTab"}.Apply(lines.FragmentOf(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRemoveBlock_EveryOccurrence(t *testing.T) {
	frag := lines.FragmentOf("function old() {\n}\nmid();\nfunction old() {\n}\n")
	out, err := RemoveBlock{Marker: "function old"}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{"mid();\n"}, out)
}

func TestRemoveBlock_Unbalanced(t *testing.T) {
	frag := lines.FragmentOf("ok();\nfunction f() {\n  if (x) {\n}\n")
	_, err := RemoveBlock{Marker: "function f"}.Apply(frag)
	require.Error(t, err)
	assert.True(t, lines.IsCode(err, lines.ErrCodeUnbalancedBlock))

	var le *lines.Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Line)
}

func TestRemoveBlock_NoMatch(t *testing.T) {
	frag := lines.FragmentOf("a();\nb();\n")
	out, err := RemoveBlock{Marker: "function zzz"}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, frag, out)
}

func TestRemoveLines(t *testing.T) {
	frag := lines.FragmentOf(`document.getElementById('componentinfo-tab').addEventListener('click', a);
keep();
document.getElementById('ifc-properties-tab').addEventListener('click', b);
`)
	out, err := RemoveLines{Substrings: []string{"componentinfo-tab", "ifc-properties-tab"}}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{"keep();\n"}, out)
}

func TestRename_AllOccurrences(t *testing.T) {
	frag := lines.FragmentOf("get('summary-version');\nset('summary-version');\n")
	out, err := Rename{From: "summary-version", To: "version-display"}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{"get('version-display');\n", "set('version-display');\n"}, out)
}

func TestRename_OrderDependent(t *testing.T) {
	frag := lines.FragmentOf("a = oldName;\nb = oldName;\n")
	p := Pipeline{
		Rename{From: "oldName", To: "midName"},
		Rename{From: "midName", To: "newName"},
	}
	out, _, err := p.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, "a = newName;\nb = newName;\n", out.String())

	// reversed order leaves the intermediate name behind
	rev := Pipeline{p[1], p[0]}
	out, _, err = rev.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, "a = midName;\nb = midName;\n", out.String())
}

func TestRename_EmptyFromIsNoop(t *testing.T) {
	frag := lines.FragmentOf("x\n")
	out, err := Rename{From: "", To: "y"}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, frag, out)
}

func TestInjectBefore(t *testing.T) {
	frag := lines.FragmentOf("<script>\nlet sel = null;\n  // helpers\nfunction a() {}\n</script>\n")
	rule := InjectBefore{
		Lines:    lines.FragmentOf("function gen() {}"),
		Prefixes: []string{"function ", "//"},
	}

	out, err := rule.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{
		"<script>\n",
		"let sel = null;\n",
		"function gen() {}\n",
		"  // helpers\n",
		"function a() {}\n",
		"</script>\n",
	}, out)
}

func TestInjectBefore_DefaultsToStart(t *testing.T) {
	frag := lines.FragmentOf("let a;\nlet b;\n")
	out, err := InjectBefore{Lines: lines.Fragment{"gen();\n"}, Prefixes: []string{"function "}}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{"gen();\n", "let a;\n", "let b;\n"}, out)
}

func TestPipeline_ReportsAndOrder(t *testing.T) {
	frag := lines.FragmentOf(`var cur = null;
function switchTab(t) {
  if (t) { go(t); }
}
tab('componentinfo-tab');
show('summary-version');
function load() {
}
`)
	p := Pipeline{
		RemoveBlock{Marker: "function switchTab"},
		RemoveLines{Substrings: []string{"componentinfo-tab"}},
		Rename{From: "summary-version", To: "version-display"},
		InjectBefore{Lines: lines.FragmentOf("function gen() {\n}\n"), Prefixes: []string{"function "}},
	}

	out, reports, err := p.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, `var cur = null;
show('version-display');
function gen() {
}
function load() {
}
`, out.String())

	require.Len(t, reports, 4)
	assert.Equal(t, Report{Rule: "remove-block(function switchTab)", LinesIn: 8, LinesOut: 5}, reports[0])
	assert.Equal(t, 4, reports[1].LinesOut)
	assert.Equal(t, 4, reports[2].LinesOut)
	assert.Equal(t, 6, reports[3].LinesOut)
}

func TestPipeline_StopsOnError(t *testing.T) {
	p := Pipeline{
		Rename{From: "a", To: "b"},
		RemoveBlock{Marker: "function f"},
		Rename{From: "b", To: "c"},
	}
	_, reports, err := p.Apply(lines.FragmentOf("function f() {\n"))
	require.Error(t, err)
	assert.Len(t, reports, 1)
}

func TestPipeline_DoesNotModifyInput(t *testing.T) {
	frag := lines.FragmentOf("x\n")
	_, _, err := Pipeline{InjectBefore{Lines: lines.Fragment{"y\n"}}}.Apply(frag)
	require.NoError(t, err)
	assert.Equal(t, lines.Fragment{"x\n"}, frag)
}

var _ Filter = Pipeline{}
