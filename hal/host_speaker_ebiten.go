//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const hostAudioSampleRate = 44100

// hostSquareWave plays the speaker tone through Ebiten's audio package.
type hostSquareWave struct {
	mu     sync.Mutex
	ctx    *audio.Context
	player *audio.Player

	freq  uint32
	duty  float64
	phase float64
}

func newHostSquareWave() *hostSquareWave {
	return &hostSquareWave{}
}

func (w *hostSquareWave) setTone(freqHz uint32, duty float64) {
	w.mu.Lock()
	w.freq = freqHz
	w.duty = duty
	start := w.player == nil
	w.mu.Unlock()

	if start {
		w.start()
	}
}

func (w *hostSquareWave) start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.player != nil {
		return
	}
	if w.ctx == nil {
		w.ctx = audio.NewContext(hostAudioSampleRate)
	}
	p, err := w.ctx.NewPlayer(&hostSquareWaveReader{w: w})
	if err != nil {
		return
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.SetVolume(0.25)
	p.Play()
	w.player = p
}

type hostSquareWaveReader struct {
	w *hostSquareWave
}

func (r *hostSquareWaveReader) Read(p []byte) (int, error) {
	w := r.w
	w.mu.Lock()
	freq := w.freq
	duty := w.duty
	phase := w.phase
	w.mu.Unlock()

	step := float64(freq) / hostAudioSampleRate
	// Ebiten audio expects 16-bit little-endian stereo.
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		var s int16
		if freq != 0 && duty > 0 {
			if phase < duty {
				s = 0x3FFF
			} else {
				s = -0x3FFF
			}
			phase += step
			if phase >= 1 {
				phase -= 1
			}
		}
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}

	w.mu.Lock()
	w.phase = phase
	w.mu.Unlock()
	return n, nil
}
