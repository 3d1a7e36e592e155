// Package protocol defines the machine-readable event stream emitted by
// audible-util and decodes individual stream lines into typed events.
//
// The wire format is one JSON object per line on the tool's stdout,
// discriminated by a "type" tag. Decoding is tolerant: missing fields
// default to zero values, unrecognized tags decode into an Unknown event
// so new protocol additions pass through harmlessly, and only lines that
// are not valid JSON objects fail to decode.
package protocol
