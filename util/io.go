package util

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"sync"

	smallerrors "smallsh/internal/errors"
)

// DefaultMaxLine is the longest input line accepted, in bytes, not
// counting the terminating newline.
const DefaultMaxLine = 2048

// SyncWriter serialises writes to an underlying writer.  The loop and
// the signal goroutine share one so that notices and prompts never
// interleave mid-line.  Each Write goes straight to the wrapped writer
// without buffering.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w.
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

// Write implements io.Writer.
func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// WriteString writes str in a single call.
func (s *SyncWriter) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// LineReader reads newline-terminated lines bounded by a maximum
// length.
//
// Reads are buffered.  A terminal hands over one line per read, but a
// pipe or file is drained ahead of the current line, so a foreground
// child sharing the same stdin will not see input the shell has already
// buffered.
type LineReader struct {
	r   *bufio.Reader
	max int
}

// NewLineReader returns a LineReader over r.  A non-positive max falls
// back to DefaultMaxLine.
func NewLineReader(r io.Reader, max int) *LineReader {
	if max <= 0 {
		max = DefaultMaxLine
	}
	return &LineReader{r: bufio.NewReaderSize(r, max+2), max: max}
}

// ReadLine returns the next line with its trailing "\n" or "\r\n"
// removed.  A line longer than the bound is consumed in full and
// reported as [smallerrors.ErrLineTooLong].  A final line without a
// newline is returned normally; io.EOF is returned only when no bytes
// remain.
func (lr *LineReader) ReadLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := lr.r.ReadSlice('\n')
		if len(line)+len(chunk) > lr.max+2 {
			tooLong = true
		} else {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) && len(line) == 0 && !tooLong {
			return "", io.EOF
		}
		break
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if tooLong || len(line) > lr.max {
		return "", smallerrors.ErrLineTooLong
	}
	return string(line), nil
}
