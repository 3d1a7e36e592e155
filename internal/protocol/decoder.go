package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrBlankLine marks an empty or whitespace-only line. Callers skip these
// silently; the tool emits them around banner output.
var ErrBlankLine = errors.New("blank line")

// DecodeError reports a line that could not be parsed as a protocol event.
// It carries the offending line so callers can log it for diagnosis.
type DecodeError struct {
	Line string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode event line %q: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses one line of tool output into an Event.
//
// Blank lines return ErrBlankLine. Lines that are not JSON objects return a
// *DecodeError. A valid object with an unknown or missing type tag decodes
// into Unknown; missing fields on known events default to zero values.
func Decode(line string) (Event, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, ErrBlankLine
	}
	if trimmed[0] != '{' {
		// Rejects numbers, strings, arrays, and null up front; they would
		// otherwise unmarshal into the envelope without error.
		return nil, &DecodeError{Line: trimmed, Err: errors.New("not a JSON object")}
	}

	var envelope struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, &DecodeError{Line: trimmed, Err: err}
	}

	payload := []byte(trimmed)
	switch envelope.Type {
	case TypeConversionStarted:
		return decodeInto[ConversionStarted](trimmed, payload)
	case TypeChapterStarted:
		return decodeInto[ChapterStarted](trimmed, payload)
	case TypeChapterProgress:
		return decodeInto[ChapterProgress](trimmed, payload)
	case TypeChapterCompleted:
		return decodeInto[ChapterCompleted](trimmed, payload)
	case TypeConversionCompleted:
		return decodeInto[ConversionCompleted](trimmed, payload)
	case TypeError:
		return decodeInto[ErrorEvent](trimmed, payload)
	default:
		raw := make(json.RawMessage, len(payload))
		copy(raw, payload)
		return Unknown{Tag: envelope.Type, Raw: raw}, nil
	}
}

func decodeInto[E Event](line string, payload []byte) (Event, error) {
	var event E
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &DecodeError{Line: line, Err: err}
	}
	return event, nil
}
