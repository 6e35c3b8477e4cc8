package kernel

import (
	"errors"
	"sync"
	"time"
)

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 8
)

// TickDuration is the length of one kernel tick.
const TickDuration = time.Millisecond

var ErrTooManyTasks = errors.New("kernel: task table full")

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields).
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the used part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > len(m.Data) {
		n = len(m.Data)
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is an independently scheduled unit of execution.
//
// Run owns the task's lifetime: when it returns the task is finished and its
// slot is never scheduled again.
type Task interface {
	Run(ctx *Context)
}

// TaskState is the lifecycle state of a registered task.
type TaskState uint8

const (
	TaskUnknown TaskState = iota
	TaskRunning
	TaskDone
	TaskPanicked
)

func (s TaskState) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskDone:
		return "done"
	case TaskPanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

type endpointState struct {
	ch chan Message
}

type taskState struct {
	state TaskState
	done  chan struct{}
}

// Kernel runs tasks on their own goroutines against a shared millisecond
// tick clock and routes IPC between them.
type Kernel struct {
	mu sync.Mutex

	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	tick     uint64
	tickCond *sync.Cond
	sleepers map[uint64]int
}

// New creates a kernel instance.
func New() *Kernel {
	k := &Kernel{sleepers: make(map[uint64]int)}
	k.tickCond = sync.NewCond(&k.mu)
	return k
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep].ch = make(chan Message, mailboxSlots)
	return Capability{ep: ep, rights: rights}
}

// AddTask registers t and starts it. The task is detached: nothing joins it.
func (k *Kernel) AddTask(t Task) (TaskID, error) {
	k.mu.Lock()
	if k.taskCount >= maxTasks {
		k.mu.Unlock()
		return 0, ErrTooManyTasks
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{state: TaskRunning, done: make(chan struct{})}
	k.mu.Unlock()

	go k.run(id, t)
	return id, nil
}

func (k *Kernel) run(id TaskID, t Task) {
	final := TaskDone
	defer func() {
		if v := recover(); v != nil {
			final = TaskPanicked
			triggerPanic(PanicInfo{TaskID: id, Name: taskName(t), Value: v})
		}
		k.mu.Lock()
		st := &k.tasks[id]
		st.state = final
		done := st.done
		k.mu.Unlock()
		close(done)
	}()
	t.Run(&Context{k: k, taskID: id})
}

// TaskState reports the lifecycle state of a task.
func (k *Kernel) TaskState(id TaskID) TaskState {
	k.mu.Lock()
	defer k.mu.Unlock()
	if id >= k.taskCount {
		return TaskUnknown
	}
	return k.tasks[id].state
}

// Done returns a channel closed when the task's Run returns.
func (k *Kernel) Done(id TaskID) <-chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	if id >= k.taskCount {
		return nil
	}
	return k.tasks[id].done
}

// TickTo advances the clock to seq and wakes sleeping tasks.
// Values at or below the current tick are ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.mu.Lock()
	if seq > k.tick {
		k.tick = seq
		k.tickCond.Broadcast()
	}
	k.mu.Unlock()
}

// Now returns the current tick.
func (k *Kernel) Now() uint64 {
	return k.nowTick()
}

func (k *Kernel) nowTick() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tick
}

// Sleeping reports how many tasks are blocked on a tick that has not been
// reached yet. A task whose deadline has passed but which has not resumed
// is not counted.
func (k *Kernel) Sleeping() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for deadline, c := range k.sleepers {
		if deadline > k.tick {
			n += c
		}
	}
	return n
}

// waitTick blocks until the clock passes after and returns the new tick.
func (k *Kernel) waitTick(after uint64) uint64 {
	return k.sleepUntil(after + 1)
}

// sleepUntil blocks until the clock reaches deadline and returns the tick.
func (k *Kernel) sleepUntil(deadline uint64) uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.tick >= deadline {
		return k.tick
	}
	k.sleepers[deadline]++
	for k.tick < deadline {
		k.tickCond.Wait()
	}
	if k.sleepers[deadline]--; k.sleepers[deadline] == 0 {
		delete(k.sleepers, deadline)
	}
	return k.tick
}

func (k *Kernel) endpointChan(ep Endpoint) chan Message {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ep >= k.endpointCount {
		return nil
	}
	return k.endpoints[ep].ch
}

func (k *Kernel) send(from Endpoint, to Endpoint, kind uint16, payload []byte) SendResult {
	ch := k.endpointChan(to)
	if ch == nil {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.From = from
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)

	select {
	case ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}

// Ticks converts d to whole ticks, rounding up.
func Ticks(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64((d + TickDuration - 1) / TickDuration)
}
