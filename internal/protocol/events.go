package protocol

import "encoding/json"

// Type discriminates event payloads on the wire.
type Type string

const (
	TypeConversionStarted   Type = "conversion_started"
	TypeChapterStarted      Type = "chapter_started"
	TypeChapterProgress     Type = "chapter_progress"
	TypeChapterCompleted    Type = "chapter_completed"
	TypeConversionCompleted Type = "conversion_completed"
	TypeError               Type = "error"
)

// Event is one decoded unit of the progress protocol.
type Event interface {
	EventType() Type
}

// ConversionStarted announces the beginning of a conversion run.
type ConversionStarted struct {
	TotalChapters int    `json:"total_chapters"`
	OutputFormat  string `json:"output_format"`
	OutputPath    string `json:"output_path"`
}

func (ConversionStarted) EventType() Type { return TypeConversionStarted }

// ChapterStarted announces that work on a chapter has begun.
type ChapterStarted struct {
	ChapterNumber   int     `json:"chapter_number"`
	ChapterTitle    string  `json:"chapter_title"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (ChapterStarted) EventType() Type { return TypeChapterStarted }

// ChapterProgress carries transcoding progress for the active chapter.
// ETASeconds is nil when the tool cannot estimate a remaining time.
type ChapterProgress struct {
	ChapterNumber      int      `json:"chapter_number"`
	ProgressPercentage float64  `json:"progress_percentage"`
	CurrentTime        float64  `json:"current_time"`
	TotalDuration      float64  `json:"total_duration"`
	Speed              float64  `json:"speed"`
	Bitrate            float64  `json:"bitrate"`
	FileSize           int64    `json:"file_size"`
	ETASeconds         *float64 `json:"eta_seconds"`
}

func (ChapterProgress) EventType() Type { return TypeChapterProgress }

// ChapterCompleted reports a finished chapter and its output file.
type ChapterCompleted struct {
	ChapterNumber   int     `json:"chapter_number"`
	ChapterTitle    string  `json:"chapter_title"`
	OutputFile      string  `json:"output_file"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (ChapterCompleted) EventType() Type { return TypeChapterCompleted }

// ConversionCompleted terminates a well-formed run.
type ConversionCompleted struct {
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	Success              bool    `json:"success"`
}

func (ConversionCompleted) EventType() Type { return TypeConversionCompleted }

// ErrorEvent surfaces an in-band tool error. ChapterNumber is nil for
// errors not attributable to a specific chapter. The event does not end
// the run; the tool's exit code remains authoritative.
type ErrorEvent struct {
	Message       string `json:"message"`
	ChapterNumber *int   `json:"chapter_number"`
}

func (ErrorEvent) EventType() Type { return TypeError }

// Unknown preserves an event with an unrecognized type tag so the pipeline
// stays forward-compatible with protocol additions. Handlers treat it as a
// no-op.
type Unknown struct {
	Tag Type
	Raw json.RawMessage
}

func (u Unknown) EventType() Type { return u.Tag }
