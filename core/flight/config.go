package flight

import "fmt"

// Config holds the scene constants shared by the projection and the scroll
// track. Distances are in scene units.
type Config struct {
	Spacing     float64 `yaml:"spacing"`      // depth between consecutive entries
	Perspective float64 `yaml:"perspective"`  // camera-to-plane distance
	NearPlane   float64 `yaml:"near_plane"`   // clipping margin in front of the camera
	FadeDepth   float64 `yaml:"fade_depth"`   // depth over which a receding node fades out
	ParallaxX   float64 `yaml:"parallax_x"`   // horizontal parallax amplitude
	ParallaxY   float64 `yaml:"parallax_y"`   // vertical parallax amplitude
	SpreadW     float64 `yaml:"spread_w"`     // width of the jitter box
	SpreadH     float64 `yaml:"spread_h"`     // height of the jitter box
}

func DefaultConfig() Config {
	return Config{
		Spacing:     520,
		Perspective: 1400,
		NearPlane:   120,
		FadeDepth:   900,
		ParallaxX:   55,
		ParallaxY:   40,
		SpreadW:     560,
		SpreadH:     320,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Spacing == 0 {
		c.Spacing = d.Spacing
	}
	if c.Perspective == 0 {
		c.Perspective = d.Perspective
	}
	if c.NearPlane == 0 {
		c.NearPlane = d.NearPlane
	}
	if c.FadeDepth == 0 {
		c.FadeDepth = d.FadeDepth
	}
	if c.ParallaxX == 0 {
		c.ParallaxX = d.ParallaxX
	}
	if c.ParallaxY == 0 {
		c.ParallaxY = d.ParallaxY
	}
	if c.SpreadW == 0 {
		c.SpreadW = d.SpreadW
	}
	if c.SpreadH == 0 {
		c.SpreadH = d.SpreadH
	}
	return c
}

func (c Config) Validate() error {
	switch {
	case c.Spacing <= 0:
		return fmt.Errorf("flight: spacing must be positive, got %v", c.Spacing)
	case c.NearPlane <= 0:
		return fmt.Errorf("flight: near_plane must be positive, got %v", c.NearPlane)
	case c.Perspective <= c.NearPlane:
		return fmt.Errorf("flight: perspective (%v) must exceed near_plane (%v)", c.Perspective, c.NearPlane)
	case c.FadeDepth <= 0:
		return fmt.Errorf("flight: fade_depth must be positive, got %v", c.FadeDepth)
	}
	return nil
}
