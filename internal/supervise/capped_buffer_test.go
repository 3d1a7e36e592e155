package supervise

import (
	"strings"
	"testing"
)

func TestCappedBufferUnderLimit(t *testing.T) {
	buf := newCappedBuffer(16)
	n, err := buf.Write([]byte("short"))
	if err != nil || n != 5 {
		t.Fatalf("Write = (%d, %v)", n, err)
	}
	if buf.String() != "short" {
		t.Errorf("String() = %q", buf.String())
	}
}

func TestCappedBufferTruncates(t *testing.T) {
	buf := newCappedBuffer(8)
	payload := strings.Repeat("x", 100)
	n, err := buf.Write([]byte(payload))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("Write = %d, want %d (writes must always be accepted)", n, len(payload))
	}
	out := buf.String()
	if !strings.HasPrefix(out, "xxxxxxxx") {
		t.Errorf("retained prefix wrong: %q", out)
	}
	if !strings.Contains(out, "92 bytes truncated") {
		t.Errorf("missing truncation marker: %q", out)
	}
}

func TestCappedBufferMultipleWrites(t *testing.T) {
	buf := newCappedBuffer(4)
	buf.Write([]byte("ab"))
	buf.Write([]byte("cdef"))
	buf.Write([]byte("gh"))
	out := buf.String()
	if !strings.HasPrefix(out, "abcd") {
		t.Errorf("retained prefix = %q", out)
	}
	if !strings.Contains(out, "4 bytes truncated") {
		t.Errorf("missing truncation marker: %q", out)
	}
}
