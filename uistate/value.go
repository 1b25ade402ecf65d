// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uistate/value.go
// Summary: Observable value with explicit change listeners.

// Package uistate holds small pieces of UI state as owned structs. The
// rendering layer reads them through getters and subscribes with OnChange;
// nothing here depends on a widget toolkit.
package uistate

// Value is an observable value. Listeners run synchronously on the goroutine
// that calls Set, in registration order, and only when the value changes.
// It is not safe for concurrent use; UI state lives on the event loop.
type Value[T comparable] struct {
	value     T
	nextID    int
	listeners []listener[T]
}

type listener[T comparable] struct {
	id int
	fn func(old, new T)
}

// NewValue returns a Value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.value
}

// Set stores value and notifies listeners if it differs from the current one.
func (v *Value[T]) Set(value T) {
	if v.value == value {
		return
	}
	old := v.value
	v.value = value
	for _, l := range append([]listener[T](nil), v.listeners...) {
		l.fn(old, value)
	}
}

// OnChange registers fn and returns a function that removes it.
func (v *Value[T]) OnChange(fn func(old, new T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	v.nextID++
	id := v.nextID
	v.listeners = append(v.listeners, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range v.listeners {
			if l.id == id {
				v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}
