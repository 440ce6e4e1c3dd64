// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package pointer provides small helpers for working with pointer values.
package pointer

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Deref returns the value behind p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// DerefOr returns the value behind p, or fallback when p is nil.
func DerefOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
