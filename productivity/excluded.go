package productivity

import (
	"strings"
	"sync"
)

// DefaultExcludedSolutions are call/care outcomes that do not count as productive work.
var DefaultExcludedSolutions = []string{
	"appointment call back to customer",
	"cus.no need support - finish",
	"get some information - drop call",
	"get some information - wait customer call back",
	"unreachable contact - finish",
}

// ExcludedSet is the runtime-adjustable set of outcome labels left out of counts.
// Labels match case-insensitively after trimming.
type ExcludedSet struct {
	mu       sync.RWMutex
	defaults []string
	labels   []string
}

// NewExcludedSet creates a set whose defaults, and initial content, are labels.
func NewExcludedSet(labels ...string) *ExcludedSet {
	s := &ExcludedSet{defaults: dedupe(labels)}
	s.labels = append([]string(nil), s.defaults...)
	return s
}

// NewDefaultExcludedSet creates a set holding DefaultExcludedSolutions.
func NewDefaultExcludedSet() *ExcludedSet {
	return NewExcludedSet(DefaultExcludedSolutions...)
}

// Contains reports whether solution is excluded. A nil set excludes nothing.
func (s *ExcludedSet) Contains(solution string) bool {
	if s == nil {
		return false
	}
	key := labelKey(solution)
	if key == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.labels {
		if labelKey(l) == key {
			return true
		}
	}
	return false
}

// Add inserts label, returning false if it was already present or blank.
func (s *ExcludedSet) Add(label string) bool {
	label = strings.TrimSpace(label)
	key := labelKey(label)
	if key == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.labels {
		if labelKey(l) == key {
			return false
		}
	}
	s.labels = append(s.labels, label)
	return true
}

// Remove deletes label, returning false if it was not present.
func (s *ExcludedSet) Remove(label string) bool {
	key := labelKey(label)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.labels {
		if labelKey(l) == key {
			s.labels = append(s.labels[:i:i], s.labels[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the whole set for labels.
func (s *ExcludedSet) Replace(labels []string) {
	next := dedupe(labels)
	s.mu.Lock()
	s.labels = next
	s.mu.Unlock()
}

// Reset restores the defaults the set was created with.
func (s *ExcludedSet) Reset() {
	s.mu.Lock()
	s.labels = append([]string(nil), s.defaults...)
	s.mu.Unlock()
}

// List returns the current labels in insertion order.
func (s *ExcludedSet) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.labels...)
}

func labelKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

func dedupe(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		key := labelKey(l)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}
