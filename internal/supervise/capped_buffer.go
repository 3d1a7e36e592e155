package supervise

import (
	"bytes"
	"fmt"
)

// cappedBuffer accepts unlimited writes but retains only the first limit
// bytes, so a chatty child never stalls on pipe backpressure and never
// grows memory without bound. Writes happen on the goroutine exec.Cmd
// spawns for Stderr; reads happen only after Wait returns.
type cappedBuffer struct {
	limit   int
	buf     bytes.Buffer
	dropped int64
}

func newCappedBuffer(limit int) *cappedBuffer {
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if remain := b.limit - b.buf.Len(); remain > 0 {
		if len(p) > remain {
			p = p[:remain]
		}
		b.buf.Write(p)
		b.dropped += int64(n - len(p))
	} else {
		b.dropped += int64(n)
	}
	return n, nil
}

func (b *cappedBuffer) Len() int {
	return b.buf.Len()
}

func (b *cappedBuffer) String() string {
	if b.dropped == 0 {
		return b.buf.String()
	}
	return fmt.Sprintf("%s\n[... %d bytes truncated]", b.buf.String(), b.dropped)
}
