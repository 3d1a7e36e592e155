package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"bindery/internal/progress"
	"bindery/internal/protocol"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// DefaultBarWidth is the progress bar cell count used when the
// configuration does not override it.
const DefaultBarWidth = 40

// progressLineOverhead approximates the characters a progress line needs
// besides the bar itself, used when clamping to the terminal width.
const progressLineOverhead = 50

// ColorMode selects how ANSI colour is applied.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithBarWidth overrides the progress bar width.
func WithBarWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.barWidth = width
		}
	}
}

// WithColorMode forces colour on or off instead of auto-detecting.
func WithColorMode(mode ColorMode) Option {
	return func(r *Renderer) {
		switch mode {
		case ColorAlways:
			r.colorize = true
		case ColorNever:
			r.colorize = false
		}
	}
}

// WithClock overrides the renderer clock. Test hook.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// Renderer writes the live conversion display. It is driven from a single
// goroutine by the supervisor.
type Renderer struct {
	out      io.Writer
	barWidth int
	colorize bool
	lineOpen bool
	now      func() time.Time
}

// New constructs a renderer for the given writer. When the writer is a
// terminal the bar width is clamped so progress lines fit on one row.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:      out,
		barWidth: DefaultBarWidth,
		colorize: isTerminal(out),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if cols, ok := terminalWidth(out); ok && r.barWidth+progressLineOverhead > cols {
		if width := cols - progressLineOverhead; width > 0 {
			r.barWidth = width
		}
	}
	return r
}

// HandleEvent renders one decoded event against the post-apply snapshot.
func (r *Renderer) HandleEvent(event protocol.Event, snap progress.Snapshot) {
	switch ev := event.(type) {
	case protocol.ConversionStarted:
		r.closeProgressLine()
		fmt.Fprintf(r.out, "Converting %d chapters to %s\n", ev.TotalChapters, ev.OutputFormat)
		fmt.Fprintf(r.out, "Output: %s\n", ev.OutputPath)

	case protocol.ChapterStarted:
		r.closeProgressLine()
		title := ev.ChapterTitle
		if strings.TrimSpace(title) == "" {
			title = "Unknown Chapter"
		}
		total := chapterTotalLabel(snap)
		fmt.Fprintf(r.out, "\nChapter %d%s: %s (%.1fs)\n", ev.ChapterNumber, total, title, ev.DurationSeconds)

	case protocol.ChapterProgress:
		bar := renderBar(r.barWidth, ev.ProgressPercentage)
		fmt.Fprintf(r.out, "\r  %s %5.1f%% | %.1fx | %.0fkbps | %s | ETA %s",
			bar,
			ev.ProgressPercentage,
			ev.Speed,
			ev.Bitrate/1000,
			formatSize(ev.FileSize),
			formatETA(ev.ETASeconds),
		)
		r.lineOpen = true

	case protocol.ChapterCompleted:
		r.closeProgressLine()
		title := ev.ChapterTitle
		if strings.TrimSpace(title) == "" {
			title = fallbackTitle(ev.OutputFile)
		}
		line := fmt.Sprintf("Chapter %d completed: %s -> %s (%.1fs)", ev.ChapterNumber, title, ev.OutputFile, ev.DurationSeconds)
		fmt.Fprintln(r.out, r.paint(ansiGreen, line))

	case protocol.ConversionCompleted:
		r.closeProgressLine()
		elapsed := ev.TotalDurationSeconds
		if elapsed == 0 {
			elapsed = snap.Elapsed(r.now()).Seconds()
		}
		if ev.Success {
			fmt.Fprintln(r.out, r.paint(ansiGreen, fmt.Sprintf("Conversion completed successfully in %.1fs", elapsed)))
			if table := summaryTable(snap.Chapters); table != "" {
				fmt.Fprintln(r.out, table)
			}
		} else {
			fmt.Fprintln(r.out, r.paint(ansiRed, fmt.Sprintf("Conversion failed after %.1fs", elapsed)))
		}

	case protocol.ErrorEvent:
		r.closeProgressLine()
		if ev.ChapterNumber != nil {
			fmt.Fprintln(r.out, r.paint(ansiRed, fmt.Sprintf("Error in chapter %d: %s", *ev.ChapterNumber, ev.Message)))
		} else {
			fmt.Fprintln(r.out, r.paint(ansiRed, fmt.Sprintf("Error: %s", ev.Message)))
		}

	case protocol.Unknown:
		// Diagnostic-only; the supervisor logs it.
	}
}

// ChildFailure reports a non-zero tool exit along with captured stderr.
func (r *Renderer) ChildFailure(code int, stderr string) {
	r.closeProgressLine()
	fmt.Fprintln(r.out, r.paint(ansiRed, fmt.Sprintf("audible-util exited with code %d", code)))
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return
	}
	for _, line := range strings.Split(stderr, "\n") {
		fmt.Fprintf(r.out, "  %s\n", line)
	}
}

// SpawnFailure reports that the tool could not be launched at all.
func (r *Renderer) SpawnFailure(err error) {
	r.closeProgressLine()
	fmt.Fprintln(r.out, r.paint(ansiRed, fmt.Sprintf("Failed to launch conversion tool: %v", err)))
}

// Warn surfaces a non-fatal condition, such as a run ending without its
// completion event.
func (r *Renderer) Warn(message string) {
	r.closeProgressLine()
	fmt.Fprintln(r.out, r.paint(ansiYellow, message))
}

func (r *Renderer) closeProgressLine() {
	if !r.lineOpen {
		return
	}
	fmt.Fprintln(r.out)
	r.lineOpen = false
}

func (r *Renderer) paint(color, line string) string {
	if !r.colorize || color == "" {
		return line
	}
	return color + line + ansiReset
}

func chapterTotalLabel(snap progress.Snapshot) string {
	if snap.TotalChapters <= 0 {
		return ""
	}
	return fmt.Sprintf("/%d", snap.TotalChapters)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func terminalWidth(writer io.Writer) (int, bool) {
	file, ok := writer.(*os.File)
	if !ok {
		return 0, false
	}
	cols, _, err := term.GetSize(int(file.Fd()))
	if err != nil || cols <= 0 {
		return 0, false
	}
	return cols, true
}
