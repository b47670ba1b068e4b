package soundtrack

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const sampleRate = 44100

// output is the device side of the player. It is a variable so tests can run
// without an audio device.
type output interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(v float64)
	Close() error
}

var (
	ctxOnce  sync.Once
	audioCtx *audio.Context
)

// audioContext returns the process-wide audio context. ebiten allows only one.
func audioContext() *audio.Context {
	ctxOnce.Do(func() {
		audioCtx = audio.CurrentContext()
		if audioCtx == nil {
			audioCtx = audio.NewContext(sampleRate)
		}
	})
	return audioCtx
}

// newOutput decodes mp3 data into a looping player, or loops the crackle bed
// when data is empty.
var newOutput = func(data []byte) (output, error) {
	ctx := audioContext()
	var (
		src    io.ReadSeeker
		length int64
	)
	if len(data) > 0 {
		s, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("soundtrack: decode mp3: %w", err)
		}
		src, length = s, s.Length()
	} else {
		src, length = crackleReader(ctx.SampleRate())
	}
	p, err := ctx.NewPlayer(audio.NewInfiniteLoop(src, length))
	if err != nil {
		return nil, fmt.Errorf("soundtrack: new player: %w", err)
	}
	return p, nil
}
