package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
element: div
classes: [panel]
style:
  font-size: 14px
children:
  - element: button
    id: ok
    classes: [primary]
  - element: button
    id: cancel
    pseudo: [hover]
    disabled: true
`

const testCSS = `
.panel { width: 200px; }
button { width: 80px; }
button:hover { opacity: 0.5; }
#ok.primary { background-color: blue; }
@keyframes grow { from { height: 10px; } to { height: 30px; } }
`

func TestScene(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	root, err := ParseScene([]byte(testScene))
	require.NoError(t, err)
	assert.Len(t, root.Children, 2)
	conf, err := parseConfig([]byte("style:\n  sibling-cache: false\n  id-reuse-threshold: 4\n"))
	require.NoError(t, err)
	assert.False(t, conf.GetBool(style.ConfigSiblingCache))
	assert.Equal(t, 4, conf.GetInt(style.ConfigIDReuseThreshold))
	scene, err := BuildScene(root, conf)
	require.NoError(t, err)
	assert.Equal(t, 3, scene.Tree.Len())
	eng := scene.Engine
	require.NoError(t, eng.AddStylesheet(testCSS))
	eng.Update(time.Unix(0, 0))
	ok, cancel := scene.Names["ok"], scene.Names["cancel"]
	if v, _ := eng.Describe(ok, "width"); v != "80px" {
		t.Errorf("expected button width 80px, is %q", v)
	}
	if v, _ := eng.Describe(ok, "font-size"); v != "14" {
		t.Errorf("expected inherited font size 14, is %q", v)
	}
	if v, _ := eng.Describe(cancel, "opacity"); v != "0.5" {
		t.Errorf("expected hovered button opacity 0.5, is %q", v)
	}
	assert.True(t, eng.IsDisabled(cancel))
	require.NoError(t, play(scene, "ok=grow", time.Second, time.Unix(0, 0)))
	assert.Error(t, play(scene, "nobody=grow", time.Second, time.Unix(0, 0)))
	_, err = ParseScene([]byte("children: []"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.cli")
	defer teardown()
	//
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	cssPath := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(scenePath, []byte(testScene), 0o644))
	require.NoError(t, os.WriteFile(cssPath, []byte(testCSS), 0o644))
	opts := &options{
		Scene:    scenePath,
		CSS:      []string{cssPath},
		Props:    []string{"width", "height"},
		Play:     []string{"ok=grow"},
		Duration: time.Second,
		At:       500 * time.Millisecond,
	}
	var out, errout bytes.Buffer
	require.NoError(t, run(opts, &out, &errout))
	t.Logf("\n%s", out.String())
	assert.Contains(t, out.String(), "button#ok.primary")
	assert.Contains(t, out.String(), "20px")
	assert.Empty(t, errout.String())
}
