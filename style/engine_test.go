package style_test

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/tree"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

// scene builds a root "div" with n children "li".
func scene(t *testing.T, eng func(*tree.Tree) *style.Engine, n int) (*style.Engine, *tree.Tree, []entity.Entity) {
	m := entity.Entities()
	root := m.Create()
	tr := tree.New(root)
	es := []entity.Entity{root}
	for i := 0; i < n; i++ {
		c := m.Create()
		require.NoError(t, tr.Add(c, root))
		es = append(es, c)
	}
	e := eng(tr)
	require.NoError(t, e.AddEntity(root, "div"))
	for _, c := range es[1:] {
		require.NoError(t, e.AddEntity(c, "li"))
	}
	return e, tr, es
}

func defaultEngine(tr *tree.Tree) *style.Engine {
	return style.NewEngine(tr, nil, nil)
}

func px(t *testing.T, p *style.Property[css.Length], e entity.Entity) float32 {
	t.Helper()
	l, ok := p.Get(e)
	if !ok {
		t.Fatalf("expected %s to be set for %v", p.Name(), e)
	}
	x, ok := l.Pixels(0)
	if !ok {
		t.Fatalf("expected %s of %v to be a fixed length, is %v", p.Name(), e, l)
	}
	return x
}

func TestTransitionOnIDChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	x := es[1]
	require.NoError(t, eng.AddStylesheet(`.a { width: 10px; } #x.a { width: 20px; transition: width 0.2s; }`))
	eng.AddClass(x, "a")
	eng.Update(t0)
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected width of 10px before id is set, is %v", w)
	}
	eng.SetID(x, "x")
	eng.Update(t0)
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected transition to start at 10px, is %v", w)
	}
	if !eng.HasAnimations() {
		t.Errorf("expected a running transition")
	}
	touched := eng.Tick(t0.Add(100 * time.Millisecond))
	assert.Contains(t, touched, x)
	if w := px(t, eng.Width, x); w <= 10 || w >= 20 {
		t.Errorf("expected width strictly between 10px and 20px, is %v", w)
	}
	eng.Tick(t0.Add(300 * time.Millisecond))
	if w := px(t, eng.Width, x); w != 20 {
		t.Errorf("expected width of 20px after the transition, is %v", w)
	}
	eng.Tick(t0.Add(400 * time.Millisecond))
	if eng.HasAnimations() {
		t.Errorf("expected transition to be finished")
	}
	if w := px(t, eng.Width, x); w != 20 {
		t.Errorf("expected width of 20px from the rule, is %v", w)
	}
}

func TestNoTransitionOnFirstStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	require.NoError(t, eng.AddStylesheet(`li { width: 20px; transition: width 1s; }`))
	eng.Update(t0)
	if eng.HasAnimations() {
		t.Errorf("expected first style application not to animate")
	}
	if w := px(t, eng.Width, es[1]); w != 20 {
		t.Errorf("expected width of 20px, is %v", w)
	}
}

func TestTransitionReversalIsContinuous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	x := es[1]
	require.NoError(t, eng.AddStylesheet(`
		.a { width: 10px; transition: width 1s; }
		.a.b { width: 20px; transition: width 1s; }`))
	eng.AddClass(x, "a")
	eng.Update(t0)
	eng.AddClass(x, "b")
	eng.Update(t0)
	redirect := t0.Add(250 * time.Millisecond)
	eng.Update(redirect)
	before := px(t, eng.Width, x)
	if before <= 10 || before >= 20 {
		t.Errorf("expected width strictly between 10px and 20px, is %v", before)
	}
	eng.RemoveClass(x, "b")
	eng.Update(redirect)
	after := px(t, eng.Width, x)
	assert.InDelta(t, before, after, 1e-3, "width jumped when the transition reversed")
	eng.Update(t0.Add(400 * time.Millisecond))
	if w := px(t, eng.Width, x); w <= 10 || w >= before {
		t.Errorf("expected width to head back from %v to 10px, is %v", before, w)
	}
	eng.Update(t0.Add(500 * time.Millisecond))
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected width of 10px after the reversed transition, is %v", w)
	}
}

func TestSpecificity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 2)
	require.NoError(t, eng.AddStylesheet(`
		.a { width: 10px; height: 10px; }
		li.a { width: 30px; }
		.b { width: 20px; height: 20px; }
		.a { min-width: 5px !important; }
		li.a.b { min-width: 7px; }
	`))
	x, y := es[1], es[2]
	eng.AddClass(x, "a")
	eng.AddClass(x, "b")
	eng.AddClass(y, "a")
	eng.Update(t0)
	if w := px(t, eng.Width, x); w != 30 {
		t.Errorf("expected li.a to win by specificity, width is %v", w)
	}
	if h := px(t, eng.Height, x); h != 20 {
		t.Errorf("expected later rule .b to win a tie, height is %v", h)
	}
	if h := px(t, eng.Height, y); h != 10 {
		t.Errorf("expected .a to apply to y, height is %v", h)
	}
	if w := px(t, eng.MinWidth, x); w != 5 {
		t.Errorf("expected !important to win, min-width is %v", w)
	}
	rules := eng.MatchedRules(x)
	require.NotEmpty(t, rules)
	assert.Equal(t, ".a !important", rules[0])
	eng.RemoveClass(x, "b")
	eng.Update(t0)
	if h := px(t, eng.Height, x); h != 10 {
		t.Errorf("expected height of 10px after removing class b, is %v", h)
	}
}

func TestInlineValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	x := es[1]
	require.NoError(t, eng.AddStylesheet(`li { width: 10px; }`))
	eng.Update(t0)
	require.NoError(t, eng.SetProperty(x, "width", "50px"))
	if w := px(t, eng.Width, x); w != 50 {
		t.Errorf("expected inline width of 50px, is %v", w)
	}
	eng.RestyleAll()
	eng.Update(t0)
	if w := px(t, eng.Width, x); w != 50 {
		t.Errorf("expected inline width to survive restyling, is %v", w)
	}
	require.NoError(t, eng.RemoveProperty(x, "width"))
	eng.Update(t0)
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected width from rule after removing inline value, is %v", w)
	}
	require.NoError(t, eng.SetProperty(x, "size", "10px 20px"))
	if w, h := px(t, eng.Width, x), px(t, eng.Height, x); w != 10 || h != 20 {
		t.Errorf("expected size 10px × 20px, is %v × %v", w, h)
	}
	err := eng.SetProperty(x, "colour", "red")
	if !errors.Is(err, style.ErrUnknownProperty) {
		t.Errorf("expected unknown property error, is %v", err)
	}
	if err := eng.SetProperty(x, "width", "wide"); err == nil {
		t.Errorf("expected error for illegal width")
	}
	if err := eng.SetProperty(x, "size", "30px wide"); err == nil {
		t.Errorf("expected error for illegal height in size")
	}
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected width to be untouched by a failing shorthand, is %v", w)
	}
	v, ok := eng.Describe(x, "height")
	assert.True(t, ok)
	assert.Equal(t, "20px", v)
}

func TestInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 2)
	root, x, y := es[0], es[1], es[2]
	require.NoError(t, eng.AddStylesheet(`
		div { font-size: 20px; color: red; width: 100px; }
		.big { font-size: 40px; }
	`))
	eng.AddClass(y, "big")
	eng.Update(t0)
	if fs, _ := eng.FontSize.Get(x); fs != 20 {
		t.Errorf("expected x to inherit font size 20, is %v", fs)
	}
	if fs, _ := eng.FontSize.Get(y); fs != 40 {
		t.Errorf("expected y to keep font size 40, is %v", fs)
	}
	if c, _ := eng.Color.Get(x); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected x to inherit color red, is %v", c)
	}
	if _, ok := eng.Width.Get(x); ok {
		t.Errorf("expected width not to be inherited")
	}
	require.NoError(t, eng.SetProperty(root, "font-size", "30px"))
	eng.Update(t0)
	if fs, _ := eng.FontSize.Get(x); fs != 30 {
		t.Errorf("expected x to inherit inline font size 30, is %v", fs)
	}
	if fs, _ := eng.FontSize.Get(y); fs != 40 {
		t.Errorf("expected y to keep font size 40, is %v", fs)
	}
	reflow := eng.TakeReflow()
	assert.Contains(t, reflow, x)
	assert.False(t, eng.Flags().Contains(style.Reflow))
}

func TestSiblingCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	const sheet = `
		.item { width: 10px; }
		li:first-child { width: 1px; }
		li:nth-child(3) { height: 3px; }
		.item:hover { opacity: 0.5; }
		div > .item { min-width: 2px; }
	`
	cached, _, es := scene(t, defaultEngine, 5)
	plain, _, ps := scene(t, func(tr *tree.Tree) *style.Engine {
		return style.NewEngine(tr, nil, testconfig.Conf{style.ConfigSiblingCache: false})
	}, 5)
	for _, eng := range []*style.Engine{cached, plain} {
		require.NoError(t, eng.AddStylesheet(sheet))
	}
	for i := 1; i < len(es); i++ {
		cached.AddClass(es[i], "item")
		plain.AddClass(ps[i], "item")
	}
	cached.SetPseudoClass(es[4], selector.Hover, true)
	plain.SetPseudoClass(ps[4], selector.Hover, true)
	cached.Update(t0)
	plain.Update(t0)
	for i := 1; i < len(es); i++ {
		assert.Equal(t, plain.MatchedRules(ps[i]), cached.MatchedRules(es[i]),
			"matched rules of child %d", i)
	}
	if w := px(t, cached.Width, es[1]); w != 1 {
		t.Errorf("expected first child to have width 1px, is %v", w)
	}
	if w := px(t, cached.Width, es[2]); w != 10 {
		t.Errorf("expected second child to have width 10px, is %v", w)
	}
	if _, ok := cached.Height.Get(es[2]); ok {
		t.Errorf("expected second child to have no height")
	}
	if h := px(t, cached.Height, es[3]); h != 3 {
		t.Errorf("expected third child to have height 3px, is %v", h)
	}
	if o, _ := cached.Opacity.Get(es[4]); o != 0.5 {
		t.Errorf("expected hovered child to have opacity 0.5, is %v", o)
	}
	if _, ok := cached.Opacity.Get(es[3]); ok {
		t.Errorf("expected third child to have no opacity")
	}
}

func TestDisabled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 2)
	require.NoError(t, eng.AddStylesheet(`li:disabled { opacity: 0.25; } li:enabled { opacity: 1; }`))
	eng.Update(t0)
	if o, _ := eng.Opacity.Get(es[1]); o != 1 {
		t.Errorf("expected enabled child to have opacity 1, is %v", o)
	}
	eng.SetDisabled(es[0], true)
	eng.Update(t0)
	for _, c := range es[1:] {
		if !eng.IsDisabled(c) {
			t.Errorf("expected %v to be disabled", c)
		}
		if o, _ := eng.Opacity.Get(c); o != 0.25 {
			t.Errorf("expected disabled child to have opacity 0.25, is %v", o)
		}
	}
	eng.SetDisabled(es[2], false)
	eng.Update(t0)
	if eng.IsDisabled(es[2]) {
		t.Errorf("expected %v to be enabled explicitly", es[2])
	}
	if o, _ := eng.Opacity.Get(es[2]); o != 1 {
		t.Errorf("expected re-enabled child to have opacity 1, is %v", o)
	}
}

func TestKeyframeAnimation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	x := es[1]
	require.NoError(t, eng.AddStylesheet(`
		@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
		li { opacity: 0.8; }
	`))
	assert.Equal(t, []string{"fade"}, eng.Animations())
	eng.Update(t0)
	if eng.PlayAnimation(x, "spin", animation.Description{Duration: time.Second}, t0) {
		t.Errorf("expected unknown animation not to play")
	}
	require.True(t, eng.PlayAnimation(x, "fade", animation.Description{Duration: time.Second}, t0))
	eng.Tick(t0.Add(500 * time.Millisecond))
	o, _ := eng.Opacity.Get(x)
	assert.InDelta(t, 0.5, o, 0.001)
	eng.Tick(t0.Add(2 * time.Second))
	eng.Tick(t0.Add(3 * time.Second))
	if o, _ := eng.Opacity.Get(x); o != 0.8 {
		t.Errorf("expected opacity from the rule after the animation, is %v", o)
	}
	require.True(t, eng.PlayAnimation(x, "fade", animation.Description{Duration: time.Second}, t0))
	eng.StopAnimation(x, "fade")
	if eng.HasAnimations() {
		t.Errorf("expected animation to be stopped")
	}
}

func TestStylesheetErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	x := es[1]
	err := eng.AddStylesheet(`li { width: 10px; colour: red; } li { height: oops; } li::before { width: 1px; }`)
	require.Error(t, err)
	var errs cssom.ParseErrors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 3)
	assert.True(t, errors.Is(err, style.ErrUnknownProperty))
	eng.Update(t0)
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected valid declarations to apply, width is %v", w)
	}
	if _, ok := eng.Height.Get(x); ok {
		t.Errorf("expected illegal height to be dropped")
	}
	assert.ErrorIs(t, eng.AddStylesheet("  "), cssom.ErrEmptyStylesheet)
}

func TestReload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	x := es[1]
	require.NoError(t, eng.AddStylesheet(`li { width: 10px; transition: width 1s; }`))
	eng.Update(t0)
	n := eng.RuleCount()
	require.NoError(t, eng.ReloadStylesheets())
	eng.Update(t0)
	assert.Equal(t, n, eng.RuleCount())
	if w := px(t, eng.Width, x); w != 10 {
		t.Errorf("expected width of 10px after reload, is %v", w)
	}
	eng.ClearStylesheets()
	eng.Update(t0)
	assert.Zero(t, eng.RuleCount())
	if _, ok := eng.Width.Get(x); ok {
		t.Errorf("expected no width without stylesheets")
	}
}

func TestDirtyFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	eng, _, es := scene(t, defaultEngine, 1)
	require.NoError(t, eng.AddStylesheet(`li { background-color: blue; }`))
	assert.True(t, eng.Flags().Contains(style.Restyle))
	eng.Update(t0)
	assert.False(t, eng.Flags().Contains(style.Restyle))
	assert.True(t, eng.NeedsRedraw())
	assert.False(t, eng.NeedsRelayout())
	eng.ClearFlags(style.Redraw)
	require.NoError(t, eng.SetProperty(es[1], "width", "3px"))
	assert.True(t, eng.NeedsRelayout())
	eng.ClearFlags(eng.Flags())
	assert.Equal(t, "clean", eng.Flags().String())
	eng.RemoveEntity(es[1])
	assert.False(t, eng.HasEntity(es[1]))
	if _, ok := eng.BackgroundColor.Get(es[1]); ok {
		t.Errorf("expected style data of removed entity to be gone")
	}
}
