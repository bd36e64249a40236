package core

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Recorder appends a timestamped transcript of the session: every accepted
// line, plus the error when one was rejected. Transcripts are diagnostic
// only, so every write is best effort.
type Recorder struct {
	mutex  sync.Mutex
	output io.WriteCloser
	now    func() time.Time
}

func NewRecorder(output io.WriteCloser) *Recorder {
	return &Recorder{
		output: output,
		now:    time.Now,
	}
}

// Record logs one evaluated line and its outcome.
func (r *Recorder) Record(line string, evalErr error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)
	if evalErr != nil {
		fmt.Fprintf(r.output, "%s\t%s\t# %v\n", timestamp, line, evalErr)
		return
	}
	fmt.Fprintf(r.output, "%s\t%s\n", timestamp, line)
}

func (r *Recorder) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.output.Close()
}
