package ui

import (
	"image"
	"math"
)

// pt reports whether (x,y) lies inside r.
func pt(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}

// rectAround returns a w×h rectangle centred on (cx,cy).
func rectAround(cx, cy float64, w, h int) image.Rectangle {
	x := int(math.Round(cx)) - w/2
	y := int(math.Round(cy)) - h/2
	return image.Rect(x, y, x+w, y+h)
}
