package styledbg_test

import (
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/style/styledbg"
	"github.com/npillmayer/restyle/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	m := entity.Entities()
	root, x := m.Create(), m.Create()
	tr := tree.New(root)
	require.NoError(t, tr.Add(x, root))
	eng := style.NewEngine(tr, m, nil)
	require.NoError(t, eng.AddEntity(root, "div"))
	require.NoError(t, eng.AddEntity(x, "li"))
	eng.SetID(x, "x")
	eng.AddClass(x, "a")
	eng.SetPseudoClass(x, selector.Hover, true)
	require.NoError(t, eng.AddStylesheet(`div { font-size: 20px; } .a { width: 10px; }`))
	eng.Update(time.Now())
	//
	assert.Equal(t, "li#x.a:hover", styledbg.Label(eng, x))
	out := styledbg.Print(eng, tr, []string{"width", "font-size"})
	t.Logf("\n%s", out)
	assert.Contains(t, out, "li#x.a:hover")
	assert.Contains(t, out, "[width]")
	assert.Contains(t, out, "10px")
	if strings.Count(out, "[font-size]") != 2 {
		t.Errorf("expected font-size to be printed for both entities, is\n%s", out)
	}
	var b strings.Builder
	require.NoError(t, styledbg.ToGraphViz(eng, tr, &b, nil))
	assert.True(t, strings.HasPrefix(b.String(), "digraph g {"))
	assert.Contains(t, b.String(), `"li#x.a:hover"`)
}
