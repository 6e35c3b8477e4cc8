package kernel

import "time"

// Context provides task-local access to kernel operations.
type Context struct {
	k      *Kernel
	taskID TaskID
}

// NewContext returns a context bound to k, for driving task code outside
// AddTask (tests, host runners).
func NewContext(k *Kernel, id TaskID) *Context {
	return &Context{k: k, taskID: id}
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// RecvChan returns the inbound message channel for an endpoint capability.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}
	ch := c.k.endpointChan(epCap.ep)
	if ch == nil {
		return nil, false
	}
	return ch, true
}

// Recv reads one message from the capability endpoint, blocking until a message arrives.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	msg, ok := <-ch
	return msg, ok
}

// TryRecv reads one message from the capability endpoint without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// SendTo sends a message to the capability endpoint.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToCapResult(toCap, kind, payload) == SendOK
}

// SendToCapResult sends a message and reports why it was not queued.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte) SendResult {
	if c.k == nil || !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(0, toCap.ep, kind, payload)
}

// SendToCapRetry retries a full queue once per tick, at most limit times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload)
	for i := 0; i < limit && res == SendErrQueueFull; i++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload)
	}
	return res
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (c *Context) NewEndpoint(rights Rights) Capability {
	if c.k == nil {
		return Capability{}
	}
	return c.k.NewEndpoint(rights)
}

// AddTask starts another task from inside a running one.
func (c *Context) AddTask(t Task) (TaskID, error) {
	if c.k == nil {
		return 0, ErrTooManyTasks
	}
	return c.k.AddTask(t)
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// BlockOnTick blocks the task until the next tick.
func (c *Context) BlockOnTick() {
	if c.k == nil {
		return
	}
	_ = c.k.waitTick(c.k.nowTick())
}

// Sleep suspends the task for d, measured on the kernel clock, and returns
// the tick it woke on. The task yields while asleep; it never spins.
func (c *Context) Sleep(d time.Duration) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.sleepUntil(c.k.nowTick() + Ticks(d))
}

// SleepUntil suspends the task until the clock reaches deadline.
func (c *Context) SleepUntil(deadline uint64) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.sleepUntil(deadline)
}
