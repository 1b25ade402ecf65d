// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/errors.go
// Summary: Error kinds reported by path operations.

package tree

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidPath is returned for empty paths and paths with empty segments.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNilRoot is returned when the mutation target is a nil Tree.
	ErrNilRoot = errors.New("nil root")
	// ErrNotFound is returned by operations that require an existing value.
	ErrNotFound = errors.New("path not found")
)

// PathError records the operation and path that failed.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + strconv.Quote(e.Path) + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error { return e.Err }
