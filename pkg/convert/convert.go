// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package convert holds lossless conversions between storage and transport
// representations.
package convert

import (
	"strconv"
	"time"
)

// TimeToRFC3339 formats t for JSON transport, returning nil for a nil input
// so optional timestamps serialize as null.
func TimeToRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// Atoi parses s, returning fallback on failure.
func Atoi(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
