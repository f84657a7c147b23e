package audio

import (
	"bytes"
	"errors"
	"testing"
)

func TestBellPatterns(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf, nil)
	b.Notify(Typing)
	if buf.Len() != 0 {
		t.Fatalf("expected typing to be silent, got %q", buf.String())
	}
	b.Notify(Correct)
	b.Notify(Victory)
	if buf.String() != "\a\a\a\a" {
		t.Fatalf("unexpected bell output: %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestBellReportsWriteErrors(t *testing.T) {
	var got error
	NewBell(failingWriter{}, func(err error) { got = err }).Notify(Wrong)
	if got == nil {
		t.Fatalf("expected write error to be reported")
	}
}

type panicNotifier struct{}

func (panicNotifier) Notify(Event) { panic("boom") }

func TestSafeRecoversPanics(t *testing.T) {
	var got error
	Safe{Next: panicNotifier{}, OnErr: func(err error) { got = err }}.Notify(Boot)
	if got == nil {
		t.Fatalf("expected panic to be reported")
	}
}

func TestForTerminalDisabled(t *testing.T) {
	if _, ok := ForTerminal(false, nil).(Nop); !ok {
		t.Fatalf("expected Nop when sound is disabled")
	}
}

type fakeTTY struct {
	bytes.Buffer
	fd uintptr
}

func (f *fakeTTY) Fd() uintptr { return f.fd }

func TestForFileRingsOnTerminal(t *testing.T) {
	tty := &fakeTTY{fd: 2}
	var gotFd int
	n := forFile(true, tty, func(fd int) bool {
		gotFd = fd
		return true
	}, nil)
	n.Notify(Correct)
	if gotFd != 2 || tty.String() != "\a" {
		t.Fatalf("expected bell on fd 2, got fd=%d out=%q", gotFd, tty.String())
	}
}

func TestForFileSkipsNonTerminal(t *testing.T) {
	n := forFile(true, &fakeTTY{}, func(int) bool { return false }, nil)
	if _, ok := n.(Nop); !ok {
		t.Fatalf("expected Nop when output is not a terminal")
	}
}
