package progress

import (
	"fmt"
	"time"

	"bindery/internal/protocol"
)

// Anomaly describes a decodable event that violated the expected protocol
// ordering or bounds. Anomalies are logged, never fatal.
type Anomaly struct {
	Event   protocol.Type
	Message string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s: %s", a.Event, a.Message)
}

// ChapterResult records one completed chapter for the end-of-run summary.
type ChapterResult struct {
	Number          int
	Title           string
	OutputFile      string
	DurationSeconds float64
}

// Snapshot is an immutable copy of the tracker state handed to renderers.
type Snapshot struct {
	Started        bool
	TotalChapters  int
	OutputFormat   string
	OutputPath     string
	CurrentChapter int
	StartTime      time.Time
	LastPercent    float64
	Completed      bool
	Success        bool
	Chapters       []ChapterResult
}

// Elapsed reports wall-clock time since the run started, or zero when no
// conversion_started event has been seen.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	if !s.Started || s.StartTime.IsZero() {
		return 0
	}
	return now.Sub(s.StartTime)
}

// Tracker is the single-run progress state machine. It is not safe for
// concurrent use; the supervisor applies events from one goroutine.
type Tracker struct {
	started        bool
	totalChapters  int
	outputFormat   string
	outputPath     string
	currentChapter int
	startTime      time.Time
	lastPercent    float64
	completed      bool
	success        bool
	chapters       []ChapterResult

	now func() time.Time
}

// NewTracker returns a tracker ready for one conversion run.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// WithClock overrides the tracker clock. Test hook.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	if now != nil {
		t.now = now
	}
	return t
}

// Apply mutates the tracker with one decoded event and reports any protocol
// anomalies the event exposed. Unknown events are no-ops.
func (t *Tracker) Apply(event protocol.Event) []Anomaly {
	var anomalies []Anomaly
	if t.completed {
		switch event.(type) {
		case protocol.Unknown:
		default:
			anomalies = append(anomalies, Anomaly{
				Event:   event.EventType(),
				Message: "event received after conversion_completed",
			})
		}
	}

	switch ev := event.(type) {
	case protocol.ConversionStarted:
		if t.started {
			anomalies = append(anomalies, Anomaly{
				Event:   protocol.TypeConversionStarted,
				Message: "duplicate conversion_started; keeping original totals",
			})
			break
		}
		t.started = true
		t.totalChapters = ev.TotalChapters
		t.outputFormat = ev.OutputFormat
		t.outputPath = ev.OutputPath
		t.startTime = t.now()

	case protocol.ChapterStarted:
		if !t.started {
			anomalies = append(anomalies, Anomaly{
				Event:   protocol.TypeChapterStarted,
				Message: "chapter_started before conversion_started",
			})
		}
		if t.totalChapters > 0 && ev.ChapterNumber > t.totalChapters {
			anomalies = append(anomalies, Anomaly{
				Event:   protocol.TypeChapterStarted,
				Message: fmt.Sprintf("chapter %d exceeds announced total %d", ev.ChapterNumber, t.totalChapters),
			})
			break
		}
		if ev.ChapterNumber > 0 && ev.ChapterNumber < t.currentChapter {
			anomalies = append(anomalies, Anomaly{
				Event:   protocol.TypeChapterStarted,
				Message: fmt.Sprintf("chapter %d started after chapter %d", ev.ChapterNumber, t.currentChapter),
			})
		}
		t.currentChapter = ev.ChapterNumber
		t.lastPercent = 0

	case protocol.ChapterProgress:
		if ev.ChapterNumber != 0 && ev.ChapterNumber != t.currentChapter {
			anomalies = append(anomalies, Anomaly{
				Event:   protocol.TypeChapterProgress,
				Message: fmt.Sprintf("progress for chapter %d while chapter %d is active", ev.ChapterNumber, t.currentChapter),
			})
		}
		// Presentation input only; remember the percentage for redraws.
		t.lastPercent = ev.ProgressPercentage

	case protocol.ChapterCompleted:
		if ev.ChapterNumber != 0 && ev.ChapterNumber != t.currentChapter {
			anomalies = append(anomalies, Anomaly{
				Event:   protocol.TypeChapterCompleted,
				Message: fmt.Sprintf("completion for chapter %d while chapter %d is active", ev.ChapterNumber, t.currentChapter),
			})
		}
		t.chapters = append(t.chapters, ChapterResult{
			Number:          ev.ChapterNumber,
			Title:           ev.ChapterTitle,
			OutputFile:      ev.OutputFile,
			DurationSeconds: ev.DurationSeconds,
		})

	case protocol.ConversionCompleted:
		t.completed = true
		t.success = ev.Success

	case protocol.ErrorEvent:
		// Surfaced by the renderer; the child exit code stays authoritative.

	case protocol.Unknown:
		// Forward-compatibility no-op.
	}

	return anomalies
}

// Snapshot copies the current state for rendering.
func (t *Tracker) Snapshot() Snapshot {
	chapters := make([]ChapterResult, len(t.chapters))
	copy(chapters, t.chapters)
	return Snapshot{
		Started:        t.started,
		TotalChapters:  t.totalChapters,
		OutputFormat:   t.outputFormat,
		OutputPath:     t.outputPath,
		CurrentChapter: t.currentChapter,
		StartTime:      t.startTime,
		LastPercent:    t.lastPercent,
		Completed:      t.completed,
		Success:        t.success,
		Chapters:       chapters,
	}
}
