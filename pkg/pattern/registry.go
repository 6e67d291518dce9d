// Copyright 2026 Recogo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package pattern

import "sync"

// Registry stores named pattern matchers for runtime lookup. It is safe for
// concurrent use. Each entry is independently owned: Register stores the
// given matcher as-is, and Lookup hands it back without copying.
type Registry struct {
	mu       sync.RWMutex
	matchers map[string]Matcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{matchers: make(map[string]Matcher)}
}

// Register stores matcher under name, replacing any existing entry.
func (r *Registry) Register(name string, matcher Matcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchers[name] = matcher
}

// Lookup returns the matcher registered under name, or nil.
func (r *Registry) Lookup(name string) Matcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.matchers[name]
}

// Names returns the registered names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	return names
}

// Unregister removes the entry under name, reporting whether one existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.matchers[name]
	if ok {
		delete(r.matchers, name)
	}
	return ok
}
