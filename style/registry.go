package style

import (
	"image/color"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/css"
)

// Properties holds the stores of all supported style properties.
type Properties struct {
	// Display and visual effects
	Display    *Property[css.DisplayMode]
	Visibility *Property[css.Visibility]
	Opacity    *Property[float32]
	ZIndex     *Property[int32]
	Rotate     *Property[float32] // degrees
	Scale      *Property[float32]
	TranslateX *Property[css.Length]
	TranslateY *Property[css.Length]
	Overflow   *Property[css.Overflow]

	// Border and outline
	BorderWidth             *Property[css.Length]
	BorderColor             *Property[color.RGBA]
	BorderTopLeftRadius     *Property[css.Length]
	BorderTopRightRadius    *Property[css.Length]
	BorderBottomRightRadius *Property[css.Length]
	BorderBottomLeftRadius  *Property[css.Length]
	OutlineWidth            *Property[css.Length]
	OutlineColor            *Property[color.RGBA]
	OutlineOffset           *Property[css.Length]

	// Background and shadows
	BackgroundColor *Property[color.RGBA]
	OuterShadow     *Property[css.Shadow]
	InnerShadow     *Property[css.Shadow]

	// Text, inherited
	FontFamily     *Property[string]
	FontSize       *Property[float32]
	FontWeight     *Property[css.FontWeight]
	FontSlant      *Property[css.FontSlant]
	Color          *Property[color.RGBA]
	CaretColor     *Property[color.RGBA]
	SelectionColor *Property[color.RGBA]

	// Layout
	LayoutType   *Property[css.LayoutType]
	PositionType *Property[css.PositionT]
	Left         *Property[css.Length]
	Right        *Property[css.Length]
	Top          *Property[css.Length]
	Bottom       *Property[css.Length]
	Width        *Property[css.Length]
	Height       *Property[css.Length]
	MinWidth     *Property[css.Length]
	MaxWidth     *Property[css.Length]
	MinHeight    *Property[css.Length]
	MaxHeight    *Property[css.Length]
	RowBetween   *Property[css.Length]
	ColBetween   *Property[css.Length]
	GridRows     *Property[css.Tracks]
	GridCols     *Property[css.Tracks]
	ChildLeft    *Property[css.Length]
	ChildRight   *Property[css.Length]
	ChildTop     *Property[css.Length]
	ChildBottom  *Property[css.Length]

	// Interaction
	Cursor   *Property[string]
	Disabled *Property[bool] // inherited

	table map[string]store
	order []store
}

func register[T comparable](ps *Properties, p *Property[T]) *Property[T] {
	ps.table[p.name] = p
	ps.order = append(ps.order, p)
	return p
}

func (p *Property[T]) inheritable() *Property[T] {
	p.inherit = true
	return p
}

func (p *Property[T]) formatWith(f func(T) string) *Property[T] {
	p.format = f
	return p
}

const (
	paint  = Redraw
	layout = Relayout | Redraw
	text   = Reflow | Relayout | Redraw
)

func length(name string, flags SystemFlags) *Property[css.Length] {
	return newProperty(name, css.ParseLength, css.LerpLength, flags)
}

func rgba(name string) *Property[color.RGBA] {
	return newProperty(name, css.ParseColor, css.LerpColor, paint).formatWith(css.ColorString)
}

func newProperties() Properties {
	ps := Properties{table: make(map[string]store)}
	ps.Display = register(&ps, newProperty("display", css.ParseDisplay, nil, Rehide|layout))
	ps.Visibility = register(&ps, newProperty("visibility", css.ParseVisibility, nil, Rehide|paint))
	ps.Opacity = register(&ps, newProperty("opacity", css.ParseOpacity, animation.LerpFloat32, paint))
	ps.ZIndex = register(&ps, newProperty("z-index", css.ParseInteger, animation.LerpInt32, Reorder|paint))
	ps.Rotate = register(&ps, newProperty("rotate", css.ParseAngle, animation.LerpFloat32, paint))
	ps.Scale = register(&ps, newProperty("scale", css.ParseNumber, animation.LerpFloat32, paint))
	ps.TranslateX = register(&ps, length("translate-x", paint))
	ps.TranslateY = register(&ps, length("translate-y", paint))
	ps.Overflow = register(&ps, newProperty("overflow", css.ParseOverflow, nil, Reclip|paint))
	//
	ps.BorderWidth = register(&ps, length("border-width", layout))
	ps.BorderColor = register(&ps, rgba("border-color"))
	ps.BorderTopLeftRadius = register(&ps, length("border-top-left-radius", paint))
	ps.BorderTopRightRadius = register(&ps, length("border-top-right-radius", paint))
	ps.BorderBottomRightRadius = register(&ps, length("border-bottom-right-radius", paint))
	ps.BorderBottomLeftRadius = register(&ps, length("border-bottom-left-radius", paint))
	ps.OutlineWidth = register(&ps, length("outline-width", paint))
	ps.OutlineColor = register(&ps, rgba("outline-color"))
	ps.OutlineOffset = register(&ps, length("outline-offset", paint))
	//
	ps.BackgroundColor = register(&ps, rgba("background-color"))
	ps.OuterShadow = register(&ps, newProperty("outer-shadow", css.ParseShadow, css.LerpShadow, paint))
	ps.InnerShadow = register(&ps, newProperty("inner-shadow", css.ParseShadow, css.LerpShadow, paint))
	//
	ps.FontFamily = register(&ps, newProperty("font-family", css.ParseFontFamily, nil, text).inheritable())
	ps.FontSize = register(&ps, newProperty("font-size", css.ParseFontSize, animation.LerpFloat32, text).inheritable())
	ps.FontWeight = register(&ps, newProperty("font-weight", css.ParseFontWeight, css.LerpFontWeight, text).inheritable())
	ps.FontSlant = register(&ps, newProperty("font-slant", css.ParseFontSlant, nil, text).inheritable())
	ps.Color = register(&ps, rgba("color").inheritable())
	ps.CaretColor = register(&ps, rgba("caret-color").inheritable())
	ps.SelectionColor = register(&ps, rgba("selection-color").inheritable())
	//
	ps.LayoutType = register(&ps, newProperty("layout-type", css.ParseLayoutType, nil, layout))
	ps.PositionType = register(&ps, newProperty("position-type", css.ParsePosition, nil, layout))
	ps.Left = register(&ps, length("left", layout))
	ps.Right = register(&ps, length("right", layout))
	ps.Top = register(&ps, length("top", layout))
	ps.Bottom = register(&ps, length("bottom", layout))
	ps.Width = register(&ps, length("width", layout))
	ps.Height = register(&ps, length("height", layout))
	ps.MinWidth = register(&ps, length("min-width", layout))
	ps.MaxWidth = register(&ps, length("max-width", layout))
	ps.MinHeight = register(&ps, length("min-height", layout))
	ps.MaxHeight = register(&ps, length("max-height", layout))
	ps.RowBetween = register(&ps, length("row-between", layout))
	ps.ColBetween = register(&ps, length("col-between", layout))
	ps.GridRows = register(&ps, newProperty("grid-rows", css.ParseTracks, nil, layout))
	ps.GridCols = register(&ps, newProperty("grid-cols", css.ParseTracks, nil, layout))
	ps.ChildLeft = register(&ps, length("child-left", layout))
	ps.ChildRight = register(&ps, length("child-right", layout))
	ps.ChildTop = register(&ps, length("child-top", layout))
	ps.ChildBottom = register(&ps, length("child-bottom", layout))
	//
	ps.Cursor = register(&ps, newProperty("cursor", css.ParseKeyword, nil, 0))
	ps.Disabled = register(&ps, newProperty("disabled", css.ParseBool, nil, paint).inheritable())
	return ps
}

// Names returns the names of all known properties, in a fixed order.
func (ps *Properties) Names() []string {
	names := make([]string, len(ps.order))
	for i, p := range ps.order {
		names[i] = p.Name()
	}
	return names
}

// IsKnown is true if name is a supported (non-shorthand) property.
func (ps *Properties) IsKnown(name string) bool {
	_, ok := ps.table[name]
	return ok
}

// transitionTargets maps the property name of a transition entry to the
// stores receiving a transition template.
var transitionTargets = map[string][]string{
	"border":        {"border-width", "border-color"},
	"border-radius": {"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius", "border-bottom-left-radius"},
	"outline":       {"outline-width", "outline-color"},
	"child-space":   {"child-left", "child-right", "child-top", "child-bottom"},
	"space":         {"left", "right", "top", "bottom"},
	"size":          {"width", "height"},
	"min-size":      {"min-width", "min-height"},
	"max-size":      {"max-width", "max-height"},
	"translate":     {"translate-x", "translate-y"},
}

// transitionStores resolves the property name of a transition entry.
func (ps *Properties) transitionStores(name string) []store {
	if name == "all" {
		return ps.order
	}
	if names, ok := transitionTargets[name]; ok {
		stores := make([]store, 0, len(names))
		for _, n := range names {
			stores = append(stores, ps.table[n])
		}
		return stores
	}
	if p, ok := ps.table[name]; ok {
		return []store{p}
	}
	return nil
}
