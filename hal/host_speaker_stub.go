//go:build !tinygo && !cgo

package hal

// hostSquareWave is silent when the CGO audio backend is unavailable.
type hostSquareWave struct{}

func newHostSquareWave() *hostSquareWave { return &hostSquareWave{} }

func (w *hostSquareWave) setTone(freqHz uint32, duty float64) {
	_ = freqHz
	_ = duty
}
