// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package query contains small helpers for composing parameterized SQL
// fragments used by the dynamically filtered list queries.
package query

import (
	"fmt"
	"strings"
)

// Builder accumulates WHERE predicates and their positional arguments.
// Placeholders are numbered from the given start position so a builder can
// be appended onto a query that already carries arguments.
type Builder struct {
	preds []string
	args  []any
	pos   int
}

// NewBuilder returns a Builder whose first placeholder is $start.
func NewBuilder(start int) *Builder {
	return &Builder{pos: start}
}

// Where appends a predicate. The fragment must contain exactly one %d verb
// which receives the next placeholder number.
func (b *Builder) Where(fragment string, arg any) *Builder {
	b.preds = append(b.preds, fmt.Sprintf(fragment, b.pos))
	b.args = append(b.args, arg)
	b.pos++
	return b
}

// WhereRaw appends a predicate that carries no argument.
func (b *Builder) WhereRaw(fragment string) *Builder {
	b.preds = append(b.preds, fragment)
	return b
}

// Clause renders the accumulated predicates as an AND-joined clause,
// or an empty string when nothing was added.
func (b *Builder) Clause() string {
	if len(b.preds) == 0 {
		return ""
	}
	return " AND " + strings.Join(b.preds, " AND ")
}

// Args returns the accumulated positional arguments.
func (b *Builder) Args() []any {
	return b.args
}

// NextPos returns the placeholder number the next Where call would use.
func (b *Builder) NextPos() int {
	return b.pos
}
