package css

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Transparent is the fully transparent color.
var Transparent = color.RGBA{}

var namedColors = map[string]color.RGBA{
	"transparent": Transparent,
	"black":       {0, 0, 0, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0, 0, 0xff},
	"green":       {0, 0x80, 0, 0xff},
	"lime":        {0, 0xff, 0, 0xff},
	"blue":        {0, 0, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0, 0xff},
	"cyan":        {0, 0xff, 0xff, 0xff},
	"aqua":        {0, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0, 0xff, 0xff},
	"fuchsia":     {0xff, 0, 0xff, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"silver":      {0xc0, 0xc0, 0xc0, 0xff},
	"maroon":      {0x80, 0, 0, 0xff},
	"olive":       {0x80, 0x80, 0, 0xff},
	"purple":      {0x80, 0, 0x80, 0xff},
	"teal":        {0, 0x80, 0x80, 0xff},
	"navy":        {0, 0, 0x80, 0xff},
	"orange":      {0xff, 0xa5, 0, 0xff},
	"powderblue":  {0xb0, 0xe0, 0xe6, 0xff},
}

// ParseColor parses a color given as a name, as hex digits ("#rgb",
// "#rgba", "#rrggbb", "#rrggbbaa") or as rgb()/rgba() function. The
// result has alpha premultiplied.
func ParseColor(value string) (color.RGBA, error) {
	t, err := singleTerm(value)
	if err != nil {
		return color.RGBA{}, err
	}
	return colorFromTerm(t)
}

func colorFromTerm(t term) (color.RGBA, error) {
	switch t.kind {
	case identTerm:
		if c, ok := namedColors[strings.ToLower(t.text)]; ok {
			return c, nil
		}
	case hashTerm:
		return hexColor(t.text)
	case funcTerm:
		if t.text == "rgb" || t.text == "rgba" {
			return rgbColor(t.args)
		}
	}
	return color.RGBA{}, fmt.Errorf("not a color: %s", t)
}

func isColorTerm(t term) bool {
	_, err := colorFromTerm(t)
	return err == nil
}

func hexColor(h string) (color.RGBA, error) {
	switch len(h) {
	case 3, 4:
		long := make([]byte, 0, 8)
		for i := 0; i < len(h); i++ {
			long = append(long, h[i], h[i])
		}
		h = string(long)
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("malformed hex color #%s", h)
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("malformed hex color #%s", h)
	}
	return premultiply(color.NRGBA{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}), nil
}

func rgbColor(args []term) (color.RGBA, error) {
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, fmt.Errorf("rgb() needs 3 or 4 arguments, have %d", len(args))
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i, a := range args {
		var x float64
		switch {
		case a.kind == percentTerm:
			x = a.num / 100 * 255
		case a.kind == numberTerm && i == 3:
			x = a.num * 255
		case a.kind == numberTerm:
			x = a.num
		default:
			return color.RGBA{}, fmt.Errorf("illegal color component %s", a)
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, x))))
	}
	return premultiply(color.NRGBA{ch[0], ch[1], ch[2], ch[3]}), nil
}

func premultiply(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// ColorString returns a CSS representation of c.
func ColorString(c color.RGBA) string {
	for _, name := range []string{"transparent", "black", "white", "red", "blue", "gray"} {
		if namedColors[name] == c {
			return name
		}
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// LerpColor interpolates colors channel by channel.
func LerpColor(from, to color.RGBA, t float32) color.RGBA {
	ch := func(a, b uint8) uint8 {
		x := float32(a) + (float32(b)-float32(a))*t
		return uint8(math.Round(math.Max(0, math.Min(255, float64(x)))))
	}
	return color.RGBA{ch(from.R, to.R), ch(from.G, to.G), ch(from.B, to.B), ch(from.A, to.A)}
}
