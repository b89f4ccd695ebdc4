package render

import (
	"image/color"

	"github.com/mazznoer/colorgrad"
	"gonum.org/v1/plot/palette/brewer"
)

// Colors returns n distinct colors from the named palette.
func Colors(name string, n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}
	if name == "" || name == "viridis" {
		// Colors(1) samples at 0/0; take two and keep the start.
		return colorgrad.Viridis().Colors(uint(max(n, 2)))[:n], nil
	}
	// ColorBrewer palettes start at three colors.
	p, err := brewer.GetPalette(brewer.TypeAny, name, max(n, 3))
	if err != nil {
		return nil, err
	}
	return p.Colors()[:n], nil
}
