package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.Notify("Time's Up", "Morning reading ran out.")

	out := buf.String()
	assert.Contains(t, out, "Time's Up")
	assert.Contains(t, out, "Morning reading ran out.")
}

func TestRecorderCapturesNotices(t *testing.T) {
	r := &Recorder{}

	r.Notify("Reminder", "Deep work starts in 5 minutes.")
	r.Notify("Reminder", "Review starts in 5 minutes.")

	assert.Len(t, r.Notices, 2)
	assert.Contains(t, r.Notices[0], "Deep work")
}
