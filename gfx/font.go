package gfx

import (
	"sort"

	"showcase/resource"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is a bitmap face with a nominal pixel size.
type Font struct {
	Handle   resource.Handle
	Name     string
	Face     tinyfont.Fonter
	BaseSize int

	life *lifetime
}

func (f Font) Valid() bool { return f.Face != nil && f.life.live() }

// Release invalidates f. Text drawn with a released font is dropped.
func (f Font) Release() error { return f.life.release() }

// MissingFont stands in for a face that failed to load; it draws with the
// default face until released.
func MissingFont(name string) Font { return Font{Name: name, life: newLifetime()} }

// DefaultFontName names the face used by DrawText.
const DefaultFontName = "proggy"

var builtinFaces = map[string]tinyfont.Fonter{
	"proggy":        &proggy.TinySZ8pt7b,
	"freesans9":     &freesans.Regular9pt7b,
	"freesans12":    &freesans.Regular12pt7b,
	"freesans18":    &freesans.Regular18pt7b,
	"freesans24":    &freesans.Regular24pt7b,
	"freesansbold9": &freesans.Bold9pt7b,
	"freemono9":     &freemono.Regular9pt7b,
	"freemono12":    &freemono.Regular12pt7b,
	"freemono18":    &freemono.Regular18pt7b,
	"freemonobold9": &freemono.Bold9pt7b,
}

// BuiltinFont returns a built-in face by name.
func BuiltinFont(name string) (Font, bool) {
	face, ok := builtinFaces[name]
	if !ok {
		return Font{}, false
	}
	return Font{Name: name, Face: face, BaseSize: int(face.GetYAdvance()), life: newLifetime()}, true
}

// BuiltinFontNames lists the built-in faces in sorted order.
func BuiltinFontNames() []string {
	names := make([]string, 0, len(builtinFaces))
	for n := range builtinFaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultFont is the face used by DrawText and MeasureText.
func DefaultFont() Font {
	f, _ := BuiltinFont(DefaultFontName)
	return f
}

// ascent is the distance from the top of a line to the baseline.
func ascent(face tinyfont.Fonter) int {
	top := 0
	for _, r := range "AMbdfhklj|" {
		if off := int(face.GetGlyph(r).Info().YOffset); off < top {
			top = off
		}
	}
	if top == 0 {
		return int(face.GetYAdvance()) * 3 / 4
	}
	return -top
}
