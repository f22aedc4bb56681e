package llm

import (
	"fmt"
	"io"
	"time"
)

// LLMCallEvent carries metadata about one completed generation call.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer is notified after every generation call. The CLI wires a
// LogObserver when INNERPATH_DEBUG is set, and NoopObserver otherwise.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes call events to an io.Writer, one line per call.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver returns an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] llm_call task=%s model=%s latency_ms=%d status=%s\n",
		ts, event.Task, event.Model, event.LatencyMs, status)
}

// NoopObserver discards every event.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
