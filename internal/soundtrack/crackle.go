package soundtrack

import (
	"bytes"
	"math"
	"math/rand/v2"
)

// Crackle renders a loopable vinyl surface-noise bed as 16-bit little endian
// stereo PCM. The output depends only on the arguments so the loop sounds the
// same every session.
func Crackle(sampleRate int, seconds float64) []byte {
	n := int(float64(sampleRate) * seconds)
	buf := make([]byte, n*4)
	rnd := rand.New(rand.NewPCG(0x5eed, 0xc0ffee))

	var (
		hiss float64 // one-pole lowpassed noise
		pop  float64 // decaying click amplitude
	)
	decay := math.Exp(-1 / (0.004 * float64(sampleRate)))
	for i := 0; i < n; i++ {
		hiss += ((rnd.Float64()*2 - 1) - hiss) * 0.15
		if rnd.Float64() < 6.0/float64(sampleRate) {
			pop = (rnd.Float64()*0.6 + 0.4) * signOf(rnd.Float64()-0.5)
		}
		v := hiss*0.05 + pop*0.35
		pop *= decay

		// fade the loop seam
		edge := math.Min(float64(i), float64(n-1-i)) / (0.01 * float64(sampleRate))
		if edge < 1 {
			v *= edge
		}
		s := int16(math.Max(-1, math.Min(1, v)) * 32767)
		buf[4*i] = byte(s)
		buf[4*i+1] = byte(s >> 8)
		buf[4*i+2] = byte(s)
		buf[4*i+3] = byte(s >> 8)
	}
	return buf
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// crackleReader wraps Crackle for audio.NewInfiniteLoop.
func crackleReader(sampleRate int) (*bytes.Reader, int64) {
	pcm := Crackle(sampleRate, 4)
	return bytes.NewReader(pcm), int64(len(pcm))
}
