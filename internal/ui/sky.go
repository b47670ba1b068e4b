package ui

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	skySeed     = 0x5ca1ab1e
	starArea    = 28000.0 // logical px² per star
	minStars    = 70
	minParticle = 320
	flowArea    = 5200.0 // logical px² per particle
	flowStep    = 1.6
	flowMix     = 0.03
)

type skyStar struct {
	x, y float64 // 0..1 of the sky
	r    float64
	tw   float64 // twinkle phase
}

type particle struct {
	x, y   float64
	vx, vy float64
	hue    int
	life   int
}

// Sky is the painted background: a flow field of brush strokes that leave
// fading trails, with twinkling stars on top. Strokes and twinkle only run
// while motion is on; a stopped sky is a flat fill with still stars.
type Sky struct {
	w, h    int
	stars   []skyStar
	parts   []particle
	trails  *ebiten.Image
	rng     *rand.Rand
	t       float64
	running bool
	boost   bool
}

func NewSky() *Sky {
	return &Sky{rng: rand.New(rand.NewPCG(skySeed, skySeed>>7))}
}

// Resize reseeds the sky for a w×h logical screen at device scale dpr.
func (s *Sky) Resize(w, h int, dpr float64) {
	if w == s.w && h == s.h && s.stars != nil {
		return
	}
	s.w, s.h = w, h
	area := float64(w*h) / SurfaceScale(dpr)
	rng := rand.New(rand.NewPCG(skySeed, uint64(w)<<20|uint64(h)))

	s.stars = make([]skyStar, maxInt(minStars, int(area/starArea)))
	for i := range s.stars {
		s.stars[i] = skyStar{
			x:  rng.Float64(),
			y:  rng.Float64() * 0.72,
			r:  0.6 + rng.Float64()*1.6,
			tw: rng.Float64(),
		}
	}
	s.parts = make([]particle, maxInt(minParticle, int(area/flowArea)))
	for i := range s.parts {
		s.parts[i] = s.spawn(rng)
	}
	s.trails = nil
}

func (s *Sky) spawn(rng *rand.Rand) particle {
	return particle{
		x:    rng.Float64() * float64(s.w),
		y:    rng.Float64() * float64(s.h),
		hue:  rng.IntN(len(palNight)),
		life: 80 + rng.IntN(160),
	}
}

// Start resumes the flow. Stop freezes it and leaves a static sky.
func (s *Sky) Start() { s.running = true }

func (s *Sky) Stop() { s.running = false }

func (s *Sky) Running() bool { return s.running }

// SetBoost switches between normal and heavy brush strokes.
func (s *Sky) SetBoost(on bool) { s.boost = on }

func (s *Sky) Boosted() bool { return s.boost }

// stroke is the trail length factor and line width of one brush stroke.
func (s *Sky) stroke() (tail, width float64) {
	if s.boost {
		return 6, 2.6
	}
	return 3, 1.4
}

// flow is the field direction at (x,y): a swirl around two eddies plus a
// value-noise wobble.
func (s *Sky) flow(x, y float64) (float64, float64) {
	w, h := float64(s.w), float64(s.h)
	ang := 0.0
	for _, c := range [...][2]float64{{0.32, 0.28}, {0.7, 0.42}} {
		dx, dy := x-c[0]*w, y-c[1]*h
		d := math.Hypot(dx, dy) + 1
		k := math.Exp(-d / (0.35 * w))
		ang += k * (math.Atan2(dy, dx) + math.Pi/2)
	}
	ang += (noise2(x*0.004, y*0.004+s.t*0.05) - 0.5) * math.Pi
	return math.Cos(ang), math.Sin(ang)
}

// Update advances the strokes by one frame.
func (s *Sky) Update() {
	if !s.running || s.w == 0 {
		return
	}
	s.t += 1.0 / 60
	for i := range s.parts {
		p := &s.parts[i]
		fx, fy := s.flow(p.x, p.y)
		p.vx += (fx - p.vx) * flowMix * 8
		p.vy += (fy - p.vy) * flowMix * 8
		p.x += p.vx * flowStep
		p.y += p.vy * flowStep
		p.life--
		if p.life <= 0 || p.x < 0 || p.y < 0 || p.x > float64(s.w) || p.y > float64(s.h) {
			*p = s.spawn(s.rng)
		}
	}
}

// Draw paints the sky onto dst, which covers the whole screen.
func (s *Sky) Draw(dst *ebiten.Image, th *Theme) {
	if s.w == 0 {
		return
	}
	if !s.running {
		fillImage(dst, th.Fill())
		s.drawStars(dst, th, false)
		return
	}
	if s.trails == nil {
		s.trails = newImage(s.w, s.h)
		fillImage(s.trails, th.Fill())
	}
	fade := rgba(th.blend(fillNight, fillDay), th.lerp(0.10, 0.14))
	drawRect(s.trails, image.Rect(0, 0, s.w, s.h), fade, true)
	tail, width := s.stroke()
	for _, p := range s.parts {
		c := rgba(th.Palette(p.hue), 0.55)
		drawLine(s.trails, p.x, p.y, p.x-p.vx*flowStep*tail, p.y-p.vy*flowStep*tail, width, c)
	}
	drawImage(dst, s.trails, &ebiten.DrawImageOptions{})
	s.drawStars(dst, th, true)
}

func (s *Sky) drawStars(dst *ebiten.Image, th *Theme, twinkle bool) {
	w, h := float64(s.w), float64(s.h)
	for _, st := range s.stars {
		a := 0.85
		if twinkle {
			a = 0.25 + 0.75*math.Abs(math.Sin(s.t*0.6+st.tw*6.28))
		}
		drawCircle(dst, st.x*w, st.y*h, st.r, starColor(th, st.tw, a))
	}
}

// starColor shifts from warm gold toward pale cream by phase.
func starColor(th *Theme, phase, a float64) color.RGBA {
	c := th.blend(starNight, starDay).BlendRgb(rgb(255, 246, 210), phase*0.5)
	return rgba(c, a)
}

// noise2 is smooth value noise in [0,1].
func noise2(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	ix, iy := int64(x0), int64(y0)
	a := hash2(ix, iy)
	b := hash2(ix+1, iy)
	c := hash2(ix, iy+1)
	d := hash2(ix+1, iy+1)
	return a + (b-a)*fx + (c-a)*fy + (a-b-c+d)*fx*fy
}

func hash2(x, y int64) float64 {
	h := uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f
	h ^= h >> 29
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 32
	return float64(h&0xffffff) / float64(0xffffff)
}
