package app

import (
	"fmt"
	"strings"

	"whirl/hal"
	"whirl/rtos/gfx"
	"whirl/rtos/kernel"
)

// installPanicHandler logs every report. The screen is drawn by whichever
// goroutine owns the canvas: the main task itself, or the panicking goroutine
// when the main task is the one that died.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			for _, line := range panicReport(info) {
				l.WriteLineString(line)
			}
		}
		if info.Name != mainTaskName {
			return
		}
		canvas := gfx.NewCanvas(h.Display())
		if err := canvas.Init(); err != nil {
			return
		}
		drawPanic(canvas, info)
	})
}

func drawPanic(canvas *gfx.Canvas, info kernel.PanicInfo) {
	canvas.Clear(gfx.White)
	wrapped := gfx.WrapLines(strings.Join(panicReport(info), "\n"), gfx.Columns(canvas.Width()))
	if rows := gfx.Rows(canvas.Height()); len(wrapped) > rows {
		wrapped = wrapped[:rows]
	}
	gfx.Banner(canvas, gfx.Black, wrapped...)
	canvas.Present()
}

func panicReport(info kernel.PanicInfo) []string {
	name := info.Name
	if name == "" {
		name = "?"
	}
	lines := []string{
		"whirl panic:",
		fmt.Sprintf("task: %d (%s)", info.TaskID, name),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
