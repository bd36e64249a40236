package core

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func TestRecorder(t *testing.T) {
	var out bytes.Buffer

	r := NewRecorder(nopWriteCloser{&out})
	r.now = func() time.Time {
		// Go's reference timestamp.
		return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	r.Record("echo hello", nil)
	r.Record("ls >", errors.New("syntax error near \">\": missing redirection target"))

	expected := "2006-01-02T03:04:05Z\techo hello\n" +
		"2006-01-02T03:04:05Z\tls >\t# syntax error near \">\": missing redirection target\n"
	assert.Equal(t, expected, out.String())
}
