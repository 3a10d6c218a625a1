package css

import (
	"fmt"
	"image/color"
	"strings"
)

// Shadow is a box shadow, either outside or inside (inset) of the border.
type Shadow struct {
	X, Y  Length
	Blur  Length
	Color color.RGBA
	Inset bool
}

// ParseShadow parses a shadow: 2 or 3 lengths (x, y and optional blur), an
// optional color and an optional "inset" keyword, in any order of groups.
// "none" yields the zero shadow.
func ParseShadow(value string) (Shadow, error) {
	terms, err := singleGroup(value)
	if err != nil {
		return Shadow{}, err
	}
	var sh Shadow
	if len(terms) == 1 && terms[0].isIdent("none") {
		return sh, nil
	}
	var lengths []Length
	hasColor := false
	for _, t := range terms {
		switch {
		case t.isIdent("inset"):
			sh.Inset = true
		case isColorTerm(t) && !hasColor:
			sh.Color, _ = colorFromTerm(t)
			hasColor = true
		default:
			l, err := lengthFromTerm(t)
			if err != nil {
				return Shadow{}, fmt.Errorf("shadow: %w", err)
			}
			lengths = append(lengths, l)
		}
	}
	if len(lengths) < 2 || len(lengths) > 3 {
		return Shadow{}, fmt.Errorf("shadow needs 2 or 3 lengths, have %d", len(lengths))
	}
	sh.X, sh.Y = lengths[0], lengths[1]
	if len(lengths) == 3 {
		sh.Blur = lengths[2]
	} else {
		sh.Blur = Px(0)
	}
	if !hasColor {
		sh.Color = namedColors["black"]
	}
	return sh, nil
}

func (sh Shadow) String() string {
	var b strings.Builder
	if sh.Inset {
		b.WriteString("inset ")
	}
	fmt.Fprintf(&b, "%s %s %s %s", sh.X, sh.Y, sh.Blur, ColorString(sh.Color))
	return b.String()
}

// LerpShadow interpolates offsets, blur and color of two shadows. Shadows
// differing in Inset switch discretely.
func LerpShadow(from, to Shadow, t float32) Shadow {
	if from.Inset != to.Inset {
		if t < 0.5 {
			return from
		}
		return to
	}
	return Shadow{
		X:     LerpLength(from.X, to.X, t),
		Y:     LerpLength(from.Y, to.Y, t),
		Blur:  LerpLength(from.Blur, to.Blur, t),
		Color: LerpColor(from.Color, to.Color, t),
		Inset: from.Inset,
	}
}
