//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavSampleRate = 22050
	wavAmplitude  = 0x2000
)

type toneSegment struct {
	at   uint64 // tick (ms) the tone took effect
	freq uint32
	duty float64
}

// wavRecorder captures speaker changes against the HAL clock and renders
// them as a 16-bit mono square wave when closed.
type wavRecorder struct {
	mu    sync.Mutex
	clock func() uint64
	start uint64
	segs  []toneSegment
}

func newWAVRecorder(clock func() uint64) *wavRecorder {
	return &wavRecorder{clock: clock, start: clock()}
}

func (r *wavRecorder) setTone(freqHz uint32, duty float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segs = append(r.segs, toneSegment{at: r.clock(), freq: freqHz, duty: duty})
}

// writeFile renders everything recorded so far into a WAV file at path.
func (r *wavRecorder) writeFile(path string) error {
	r.mu.Lock()
	end := r.clock()
	pcm := renderSquare(r.segs, r.start, end, wavSampleRate)
	r.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	enc := wav.NewEncoder(f, wavSampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: wavSampleRate},
		Data:           pcm,
		SourceBitDepth: 16,
	}
	werr := enc.Write(buf)
	cerr := enc.Close()
	ferr := f.Close()
	if err := errors.Join(werr, cerr, ferr); err != nil {
		return fmt.Errorf("wav: %s: %w", path, err)
	}
	return nil
}

// renderSquare produces samples covering [start, end) ticks.
func renderSquare(segs []toneSegment, start, end uint64, rate int) []int {
	if end <= start || rate <= 0 {
		return nil
	}
	total := int((end - start) * uint64(rate) / 1000)
	out := make([]int, total)

	var (
		cur   toneSegment
		next  int
		phase float64
	)
	for i := 0; i < total; i++ {
		at := start + uint64(i)*1000/uint64(rate)
		for next < len(segs) && segs[next].at <= at {
			cur = segs[next]
			next++
		}
		if cur.freq == 0 || cur.duty <= 0 {
			continue
		}
		if phase < cur.duty {
			out[i] = wavAmplitude
		} else {
			out[i] = -wavAmplitude
		}
		phase += float64(cur.freq) / float64(rate)
		if phase >= 1 {
			phase -= float64(int(phase))
		}
	}
	return out
}
