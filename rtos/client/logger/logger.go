package logger

import (
	"fmt"

	"whirl/rtos/kernel"
	"whirl/rtos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidToCap
	}
	payload := proto.LogLinePayload([]byte(line), kernel.MaxMessageBytes)
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), payload)
}

// Logf formats according to a format specifier and sends the result.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// LogRetry is Log with up to limit one-tick backoffs while the queue is full.
func LogRetry(ctx *kernel.Context, logCap kernel.Capability, line string, limit int) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidToCap
	}
	payload := proto.LogLinePayload([]byte(line), kernel.MaxMessageBytes)
	return ctx.SendToCapRetry(logCap, uint16(proto.MsgLogLine), payload, limit)
}
