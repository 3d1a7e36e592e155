package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"bindery/internal/progress"
	"bindery/internal/protocol"
)

func newTestRenderer(buf *bytes.Buffer, opts ...Option) *Renderer {
	base := []Option{WithColorMode(ColorNever)}
	return New(buf, append(base, opts...)...)
}

func TestRenderConversionStarted(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HandleEvent(protocol.ConversionStarted{TotalChapters: 12, OutputFormat: "mp3", OutputPath: "/tmp/book"}, progress.Snapshot{})

	out := buf.String()
	if !strings.Contains(out, "Converting 12 chapters to mp3") {
		t.Errorf("missing start summary, got %q", out)
	}
	if !strings.Contains(out, "Output: /tmp/book") {
		t.Errorf("missing output path, got %q", out)
	}
}

func TestRenderChapterStarted(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	snap := progress.Snapshot{TotalChapters: 12}
	r.HandleEvent(protocol.ChapterStarted{ChapterNumber: 3, ChapterTitle: "The Road", DurationSeconds: 124.5}, snap)

	out := buf.String()
	if !strings.Contains(out, "Chapter 3/12: The Road (124.5s)") {
		t.Errorf("unexpected chapter header: %q", out)
	}
}

func TestRenderChapterStartedUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HandleEvent(protocol.ChapterStarted{ChapterNumber: 3, ChapterTitle: "The Road"}, progress.Snapshot{})

	if !strings.Contains(buf.String(), "Chapter 3:") {
		t.Errorf("expected raw chapter number without total, got %q", buf.String())
	}
}

func TestRenderChapterProgressLine(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, WithBarWidth(10))
	eta := 42.7
	r.HandleEvent(protocol.ChapterProgress{
		ChapterNumber:      1,
		ProgressPercentage: 50,
		Speed:              1.2,
		Bitrate:            64000,
		FileSize:           1536,
		ETASeconds:         &eta,
	}, progress.Snapshot{})

	out := buf.String()
	if !strings.HasPrefix(out, "\r") {
		t.Error("progress line must rewrite in place with a carriage return")
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("progress line must not append a newline")
	}
	for _, want := range []string{"█████░░░░░", " 50.0%", "1.2x", "64kbps", "1.5 KB", "ETA 43s"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress line missing %q: %q", want, out)
		}
	}
}

func TestRenderProgressThenEventClosesLine(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, WithBarWidth(10))
	r.HandleEvent(protocol.ChapterProgress{ProgressPercentage: 50}, progress.Snapshot{})
	r.HandleEvent(protocol.ChapterCompleted{ChapterNumber: 1, ChapterTitle: "Prologue", OutputFile: "/tmp/01.mp3", DurationSeconds: 90}, progress.Snapshot{})

	out := buf.String()
	idx := strings.Index(out, "Chapter 1 completed")
	if idx == -1 {
		t.Fatalf("missing completion line: %q", out)
	}
	if !strings.Contains(out[:idx], "\n") {
		t.Error("expected newline closing the progress line before the completion line")
	}
}

func TestRenderCompletionFallbackTitle(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HandleEvent(protocol.ChapterCompleted{ChapterNumber: 2, OutputFile: "/tmp/chapter_two.mp3"}, progress.Snapshot{})

	if !strings.Contains(buf.String(), "Chapter Two") {
		t.Errorf("expected derived title, got %q", buf.String())
	}
}

func TestRenderConversionCompletedSuccess(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	snap := progress.Snapshot{
		Started:  true,
		Chapters: []progress.ChapterResult{{Number: 1, Title: "Prologue", OutputFile: "/tmp/01.mp3", DurationSeconds: 90}},
	}
	r.HandleEvent(protocol.ConversionCompleted{TotalDurationSeconds: 210.4, Success: true}, snap)

	out := buf.String()
	if !strings.Contains(out, "Conversion completed successfully in 210.4s") {
		t.Errorf("missing success banner: %q", out)
	}
	if !strings.Contains(out, "Prologue") || !strings.Contains(out, "/tmp/01.mp3") {
		t.Errorf("missing chapter summary table: %q", out)
	}
}

func TestRenderConversionCompletedFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HandleEvent(protocol.ConversionCompleted{TotalDurationSeconds: 12, Success: false}, progress.Snapshot{})

	out := buf.String()
	if !strings.Contains(out, "Conversion failed after 12.0s") {
		t.Errorf("missing failure banner: %q", out)
	}
	if strings.Contains(out, "successfully") {
		t.Errorf("failure output mentions success: %q", out)
	}
}

func TestRenderCompletionElapsedFallback(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	r := newTestRenderer(&buf, WithClock(func() time.Time { return start.Add(90 * time.Second) }))
	snap := progress.Snapshot{Started: true, StartTime: start}
	r.HandleEvent(protocol.ConversionCompleted{Success: true}, snap)

	if !strings.Contains(buf.String(), "90.0s") {
		t.Errorf("expected wall-clock fallback duration, got %q", buf.String())
	}
}

func TestRenderErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	chapter := 3
	r.HandleEvent(protocol.ErrorEvent{Message: "codec failure", ChapterNumber: &chapter}, progress.Snapshot{})
	r.HandleEvent(protocol.ErrorEvent{Message: "disk full"}, progress.Snapshot{})

	out := buf.String()
	if !strings.Contains(out, "Error in chapter 3: codec failure") {
		t.Errorf("missing chapter error: %q", out)
	}
	if !strings.Contains(out, "Error: disk full") {
		t.Errorf("missing general error: %q", out)
	}
}

func TestRenderUnknownIsSilent(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HandleEvent(protocol.Unknown{Tag: "future_event"}, progress.Snapshot{})

	if buf.Len() != 0 {
		t.Errorf("unknown event produced output: %q", buf.String())
	}
}

func TestRenderChildFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.ChildFailure(3, "boom\nsecond line")

	out := buf.String()
	if !strings.Contains(out, "exited with code 3") {
		t.Errorf("missing exit banner: %q", out)
	}
	if !strings.Contains(out, "  boom") || !strings.Contains(out, "  second line") {
		t.Errorf("missing indented stderr content: %q", out)
	}
}

func TestRenderIdempotentForSameInput(t *testing.T) {
	event := protocol.ChapterProgress{ChapterNumber: 1, ProgressPercentage: 33.3, Speed: 1, Bitrate: 128000, FileSize: 2048}
	snap := progress.Snapshot{TotalChapters: 2, CurrentChapter: 1}

	var first, second bytes.Buffer
	newTestRenderer(&first, WithBarWidth(20)).HandleEvent(event, snap)
	newTestRenderer(&second, WithBarWidth(20)).HandleEvent(event, snap)

	if first.String() != second.String() {
		t.Error("rendering the same event and state twice produced different output")
	}
}
