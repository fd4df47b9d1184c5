package hw

import (
	"fmt"
	"image/color"
)

// A Palette maps the 64 NES color indices to RGB.
type Palette [64]color.RGBA

// DefaultPalette returns a copy of the builtin 2C02 palette.
func DefaultPalette() *Palette {
	pal := defaultPalette
	return &pal
}

// ParsePalette parses a .pal file: 64 RGB triplets. Larger files (containing
// the emphasis variants) are accepted, only the first 64 colors are used.
func ParsePalette(buf []byte) (*Palette, error) {
	if len(buf) < 64*3 {
		return nil, fmt.Errorf("palette too short: %d bytes, want at least %d", len(buf), 64*3)
	}
	if len(buf)%3 != 0 {
		return nil, fmt.Errorf("invalid palette size: %d bytes", len(buf))
	}

	var pal Palette
	for i := range pal {
		pal[i] = color.RGBA{buf[i*3], buf[i*3+1], buf[i*3+2], 0xFF}
	}
	return &pal, nil
}

var defaultPalette = Palette{
	{124, 124, 124, 0xFF}, {0, 0, 252, 0xFF}, {0, 0, 188, 0xFF}, {68, 40, 188, 0xFF},
	{148, 0, 132, 0xFF}, {168, 0, 32, 0xFF}, {168, 16, 0, 0xFF}, {136, 20, 0, 0xFF},
	{80, 48, 0, 0xFF}, {0, 120, 0, 0xFF}, {0, 104, 0, 0xFF}, {0, 88, 0, 0xFF},
	{0, 64, 88, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
	{188, 188, 188, 0xFF}, {0, 120, 248, 0xFF}, {0, 88, 248, 0xFF}, {104, 68, 252, 0xFF},
	{216, 0, 204, 0xFF}, {228, 0, 88, 0xFF}, {248, 56, 0, 0xFF}, {228, 92, 16, 0xFF},
	{172, 124, 0, 0xFF}, {0, 184, 0, 0xFF}, {0, 168, 0, 0xFF}, {0, 168, 68, 0xFF},
	{0, 136, 136, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
	{248, 248, 248, 0xFF}, {60, 188, 252, 0xFF}, {104, 136, 252, 0xFF}, {152, 120, 248, 0xFF},
	{248, 120, 248, 0xFF}, {248, 88, 152, 0xFF}, {248, 120, 88, 0xFF}, {252, 160, 68, 0xFF},
	{248, 184, 0, 0xFF}, {184, 248, 24, 0xFF}, {88, 216, 84, 0xFF}, {88, 248, 152, 0xFF},
	{0, 232, 216, 0xFF}, {120, 120, 120, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
	{252, 252, 252, 0xFF}, {164, 228, 252, 0xFF}, {184, 184, 248, 0xFF}, {216, 184, 248, 0xFF},
	{248, 184, 248, 0xFF}, {248, 164, 192, 0xFF}, {240, 208, 176, 0xFF}, {252, 224, 168, 0xFF},
	{248, 216, 120, 0xFF}, {216, 248, 120, 0xFF}, {184, 248, 184, 0xFF}, {184, 248, 216, 0xFF},
	{0, 252, 252, 0xFF}, {248, 216, 248, 0xFF}, {0, 0, 0, 0xFF}, {0, 0, 0, 0xFF},
}
