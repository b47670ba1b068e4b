package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Slider is a horizontal slider component with a 0..1 value.
type Slider struct {
	r        image.Rectangle
	Value    float64
	Label    string
	OnChange func(v float64)
	Track    color.Color
	Knob     color.Color
	dragging bool
}

func NewSlider(v float64) *Slider {
	return &Slider{
		Value: v,
		Track: color.RGBA{80, 80, 80, 255},
		Knob:  color.RGBA{200, 200, 200, 255},
	}
}

func (s *Slider) SetRect(r image.Rectangle) { s.r = r }

func (s *Slider) Rect() image.Rectangle { return s.r }

// Handle processes mouse interaction and reports whether the slider owns the
// press. OnChange fires when a drag moves the value.
func (s *Slider) Handle(mx, my int, pressed bool) bool {
	if pressed {
		if s.dragging || pt(mx, my, s.r) {
			s.dragging = true
			old := s.Value
			s.setFromX(mx)
			if s.Value != old && s.OnChange != nil {
				s.OnChange(s.Value)
			}
			return true
		}
	} else if s.dragging {
		s.dragging = false
		return true
	}
	return false
}

func (s *Slider) setFromX(mx int) {
	w := s.r.Dx() - 1
	if w <= 0 {
		s.Value = 0
		return
	}
	s.Value = clampf(float64(mx-s.r.Min.X), 0, float64(w)) / float64(w)
}

// Draw renders the track, the knob and the percentage label.
func (s *Slider) Draw(dst *ebiten.Image) {
	trackY := s.r.Min.Y + s.r.Dy()/2 - 2
	drawRect(dst, image.Rect(s.r.Min.X, trackY, s.r.Max.X, trackY+4), s.Track, true)

	knobX := s.r.Min.X + int(s.Value*float64(s.r.Dx()-1))
	drawRect(dst, image.Rect(knobX-2, s.r.Min.Y, knobX+2, s.r.Max.Y), s.Knob, true)

	txt := fmt.Sprintf("%d%%", int(s.Value*100+0.5))
	if s.Label != "" {
		txt = s.Label + " " + txt
	}
	drawText(dst, txt, s.r.Min.X, s.r.Min.Y-15)
}
