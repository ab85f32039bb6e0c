package texture

import (
	"strings"

	"github.com/db47h/glprog/driver"
	"github.com/pkg/errors"
)

// Layout is the pixel layout of texture data: its format (number and kind of
// components) and component type.
//
type Layout struct {
	Format driver.Enum
	Type   driver.Enum
}

// Common layouts.
//
var (
	R8       = Layout{driver.RED, driver.UNSIGNED_BYTE}
	RG8      = Layout{driver.RG, driver.UNSIGNED_BYTE}
	RGB8     = Layout{driver.RGB, driver.UNSIGNED_BYTE}
	RGBA8    = Layout{driver.RGBA, driver.UNSIGNED_BYTE}
	R16F     = Layout{driver.RED, driver.HALF_FLOAT}
	RG16F    = Layout{driver.RG, driver.HALF_FLOAT}
	RGB16F   = Layout{driver.RGB, driver.HALF_FLOAT}
	RGBA16F  = Layout{driver.RGBA, driver.HALF_FLOAT}
	R32F     = Layout{driver.RED, driver.FLOAT}
	RG32F    = Layout{driver.RG, driver.FLOAT}
	RGB32F   = Layout{driver.RGB, driver.FLOAT}
	RGBA32F  = Layout{driver.RGBA, driver.FLOAT}
	R32I     = Layout{driver.RED_INTEGER, driver.INT}
	R32UI    = Layout{driver.RED_INTEGER, driver.UNSIGNED_INT}
	RGBA32I  = Layout{driver.RGBA_INTEGER, driver.INT}
	RGBA32UI = Layout{driver.RGBA_INTEGER, driver.UNSIGNED_INT}
)

var internalFormats = map[Layout]driver.Enum{
	R8:       driver.R8,
	RG8:      driver.RG8,
	RGB8:     driver.RGB8,
	RGBA8:    driver.RGBA8,
	R16F:     driver.R16F,
	RG16F:    driver.RG16F,
	RGB16F:   driver.RGB16F,
	RGBA16F:  driver.RGBA16F,
	R32F:     driver.R32F,
	RG32F:    driver.RG32F,
	RGB32F:   driver.RGB32F,
	RGBA32F:  driver.RGBA32F,
	R32I:     driver.R32I,
	R32UI:    driver.R32UI,
	RGBA32I:  driver.RGBA32I,
	RGBA32UI: driver.RGBA32UI,
}

var layoutNames = map[string]Layout{
	"r8":       R8,
	"rg8":      RG8,
	"rgb8":     RGB8,
	"rgba8":    RGBA8,
	"r16f":     R16F,
	"rg16f":    RG16F,
	"rgb16f":   RGB16F,
	"rgba16f":  RGBA16F,
	"r32f":     R32F,
	"rg32f":    RG32F,
	"rgb32f":   RGB32F,
	"rgba32f":  RGBA32F,
	"r32i":     R32I,
	"r32ui":    R32UI,
	"rgba32i":  RGBA32I,
	"rgba32ui": RGBA32UI,
}

// ParseLayout returns the layout with the given name, the lowercase name of
// its sized internal format like "rgba8" or "r32f".
//
func ParseLayout(name string) (Layout, error) {
	if l, ok := layoutNames[strings.ToLower(name)]; ok {
		return l, nil
	}
	return Layout{}, errors.Errorf("unknown texture layout %q", name)
}

// InternalFormat returns the sized internal format matching l, or 0 if there
// is none.
//
func (l Layout) InternalFormat() driver.Enum {
	return internalFormats[l]
}

// Components returns the number of components per pixel.
//
func (l Layout) Components() int {
	switch l.Format {
	case driver.RED, driver.RED_INTEGER:
		return 1
	case driver.RG:
		return 2
	case driver.RGB:
		return 3
	case driver.RGBA, driver.RGBA_INTEGER:
		return 4
	}
	return 0
}

// PixelSize returns the size in bytes of a pixel.
//
func (l Layout) PixelSize() int {
	var sz int
	switch l.Type {
	case driver.UNSIGNED_BYTE, driver.BYTE:
		sz = 1
	case driver.UNSIGNED_SHORT, driver.SHORT, driver.HALF_FLOAT:
		sz = 2
	case driver.UNSIGNED_INT, driver.INT, driver.FLOAT:
		sz = 4
	}
	return sz * l.Components()
}

func (l Layout) String() string {
	for n, v := range layoutNames {
		if v == l {
			return n
		}
	}
	return "custom"
}
