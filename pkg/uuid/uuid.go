// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package uuid generates the identifiers used as primary keys across
Inkwell. Every ID is a UUIDv7: time-ordered, so fresh rows land at the
end of Postgres B-tree indexes instead of fragmenting them, while still
fitting the standard uuid column type.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string. Generation only fails when the
// system entropy source is broken, which is not a condition the caller
// can handle, so that case panics.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7_generate: " + err.Error())
	}
	return id.String()
}
