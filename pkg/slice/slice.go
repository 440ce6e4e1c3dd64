// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package slice provides generic slice helpers.
package slice

import "strings"

// Contains reports whether needle occurs in haystack.
func Contains[T comparable](haystack []T, needle T) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// Map applies fn to every element of in and returns the results.
func Map[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// Dedupe returns in with duplicate elements removed, preserving first-seen
// order.
func Dedupe[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// CleanStrings trims whitespace from every element and drops the ones that
// end up empty.
func CleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
