package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Name   string
	Value  any
	Stack  []byte
}

// Named is implemented by tasks that want a readable name in panic reports.
type Named interface {
	Name() string
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
	firstPanic   atomic.Pointer[PanicInfo]
)

// InPanicMode reports whether any task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// LastPanic returns the panic that put the kernel into panic mode. It is
// always set by the time InPanicMode reports true.
func LastPanic() (PanicInfo, bool) {
	p := firstPanic.Load()
	if p == nil {
		return PanicInfo{}, false
	}
	return *p, true
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func taskName(t Task) string {
	if n, ok := t.(Named); ok {
		return n.Name()
	}
	return ""
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		info.Stack = captureStack()
		firstPanic.Store(&info)
		panicActive.Store(true)
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
	panicActive.Store(true)
}
