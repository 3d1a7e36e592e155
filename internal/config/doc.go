// Package config loads, normalizes, and validates bindery configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. A missing config file is not an error;
// defaults cover every knob, so the tool works out of the box.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical display modes, and clear validation errors.
package config
