package cssom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/restyle/css"
)

// Property is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return strings.TrimSpace(string(p)) == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Shorthands ------------------------------------------------------------

// IsCompound returns true if key is a shorthand for other properties.
func IsCompound(key string) bool {
	switch key {
	case "space", "child-space", "border-radius", "border", "outline",
		"size", "min-size", "max-size", "translate":
		return true
	}
	return false
}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//
//	SplitCompoundProperty("child-space", "3px 1s")
//
// will return
//
//	"child-top"    => "3px"
//	"child-right"  => "1s"
//	"child-bottom" => "3px"
//	"child-left"   => "1s"
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields, err := css.Fields(value.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	switch key {
	case "space":
		return feazeCompound4("", "", fourDirs, fields)
	case "child-space":
		return feazeCompound4("child", "", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	case "border":
		return splitWidthColor("border", fields)
	case "outline":
		return splitWidthColor("outline", fields)
	case "size":
		return feazeCompound2("", "width", "height", fields)
	case "min-size":
		return feazeCompound2("min", "width", "height", fields)
	case "max-size":
		return feazeCompound2("max", "width", "height", fields)
	case "translate":
		return feazeCompound2("translate", "x", "y", fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	four, err := css.Distribute4(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p(pre, suf, "*"), err)
	}
	r := make([]KeyValue, 4)
	for i := range four {
		r[i] = KeyValue{p(pre, suf, dirs[i]), Property(four[i])}
	}
	return r, nil
}

func feazeCompound2(pre string, a, b string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 2 {
		return nil, fmt.Errorf("expecting 1-2 values for %s-%s/%s", pre, a, b)
	}
	r := []KeyValue{
		{p(pre, "", a), Property(fields[0])},
		{p(pre, "", b), Property(fields[l-1])},
	}
	return r, nil
}

// splitWidthColor splits a border-like shorthand, e.g. "1px solid red".
// Line style keywords are accepted but ignored.
func splitWidthColor(pre string, fields []string) ([]KeyValue, error) {
	var r []KeyValue
	var hasWidth, hasColor bool
	for _, f := range fields {
		switch {
		case isLineStyle(f):
			continue
		case !hasColor && isColor(f):
			r = append(r, KeyValue{pre + "-color", Property(f)})
			hasColor = true
		case !hasWidth:
			if strings.EqualFold(f, "none") {
				f = "0"
			}
			r = append(r, KeyValue{pre + "-width", Property(f)})
			hasWidth = true
		default:
			return nil, fmt.Errorf("%s: unexpected value %q", pre, f)
		}
	}
	if len(r) == 0 {
		return nil, fmt.Errorf("%s: no width or color", pre)
	}
	return r, nil
}

func isColor(s string) bool {
	_, err := css.ParseColor(s)
	return err == nil
}

func isLineStyle(s string) bool {
	switch strings.ToLower(s) {
	case "solid", "dashed", "dotted", "double":
		return true
	}
	return false
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	switch {
	case prefix == "" && suffix == "":
		return tag
	case suffix == "":
		return prefix + "-" + tag
	case prefix == "":
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
