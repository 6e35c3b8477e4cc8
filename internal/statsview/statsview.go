//go:build !tinygo

// Package statsview serves a live runtime dashboard (goroutines, heap, GC)
// for the host simulator.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const Address = "localhost:18066"

const path = "/debug/statsview"

// Launch starts the dashboard on its own goroutine and prints where it lives.
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", Address, path)
}
