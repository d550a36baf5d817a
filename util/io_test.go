package util

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	smallerrors "smallsh/internal/errors"
)

func TestLineReader_ReadLine(t *testing.T) {
	lr := NewLineReader(strings.NewReader("ls -la\r\n\nstatus\nexit"), 0)

	want := []string{"ls -la", "", "status", "exit"}
	for i, w := range want {
		got, err := lr.ReadLine()
		if err != nil {
			t.Fatalf("line %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
	}
	if _, err := lr.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after last line, got %v", err)
	}
}

func TestLineReader_TooLong(t *testing.T) {
	long := strings.Repeat("a", 40)
	lr := NewLineReader(strings.NewReader(long+"\nok\n"), 16)

	if _, err := lr.ReadLine(); !errors.Is(err, smallerrors.ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
	// The oversized line is consumed completely.
	got, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
}

func TestLineReader_ExactBound(t *testing.T) {
	exact := strings.Repeat("b", 16)
	lr := NewLineReader(strings.NewReader(exact+"\n"), 16)

	got, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != exact {
		t.Errorf("got %q, want %q", got, exact)
	}
}

func TestSyncWriter_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	w := NewSyncWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.WriteString("line\n") //nolint:errcheck
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 50 {
		t.Fatalf("expected 50 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l != "line" {
			t.Fatalf("interleaved write: %q", l)
		}
	}
}

func TestLineReader_BuffersAheadOnPipes(t *testing.T) {
	src := strings.NewReader("cat\nmeant for cat\nstatus\n")
	lr := NewLineReader(src, 0)

	line, err := lr.ReadLine()
	if err != nil || line != "cat" {
		t.Fatalf("ReadLine = %q, %v", line, err)
	}
	if src.Len() != 0 {
		t.Fatalf("source has %d unread bytes, want the whole input buffered", src.Len())
	}

	// The buffered line is handed to the shell, not to a child.
	line, err = lr.ReadLine()
	if err != nil || line != "meant for cat" {
		t.Errorf("ReadLine = %q, %v", line, err)
	}
}
