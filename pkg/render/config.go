package render

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates rendering settings that cannot produce a chart.
var ErrInvalidConfig = errors.New("render: invalid config")

// Config is the chart styling shared by every chart of a run. It is fixed
// when the Renderer is built.
type Config struct {
	// Width and Height of each image, in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// FontSize for axis labels, ticks and legends, in points. Titles are
	// drawn a quarter larger and bold.
	FontSize float64 `yaml:"font_size"`

	// Grid draws major grid lines behind the data.
	Grid bool `yaml:"grid"`

	// Palette is "viridis" or a ColorBrewer palette name such as "Set2".
	Palette string `yaml:"palette"`

	// MarkerRadius of scatter glyphs, in points.
	MarkerRadius float64 `yaml:"marker_radius"`
}

// DefaultConfig matches the reference look: 12x6 inch figures, 12pt text,
// white background with grid, viridis colors.
func DefaultConfig() Config {
	return Config{
		Width:        12,
		Height:       6,
		FontSize:     12,
		Grid:         true,
		Palette:      "viridis",
		MarkerRadius: 5,
	}
}

// Validate checks that sizes are positive and the palette exists.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: figure size %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case c.FontSize <= 0:
		return fmt.Errorf("%w: font size %g", ErrInvalidConfig, c.FontSize)
	case c.MarkerRadius <= 0:
		return fmt.Errorf("%w: marker radius %g", ErrInvalidConfig, c.MarkerRadius)
	}
	if _, err := Colors(c.Palette, 4); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
