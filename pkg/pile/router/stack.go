package router

import "github.com/BrandonKowalski/pile/pkg/pile"

// StackEntry is one screen in the navigation history: which screen it
// is, the input it was built from and the element shown for it.
type StackEntry struct {
	Screen  Screen
	Input   any
	Element pile.Element
}

// Stack mirrors the pile's elements with the screens that built them.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push adds a new entry to the stack.
func (s *Stack) Push(entry StackEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// Replace swaps the top entry. It does nothing on an empty stack.
func (s *Stack) Replace(entry StackEntry) {
	if len(s.entries) == 0 {
		return
	}
	s.entries[len(s.entries)-1] = entry
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries, bottom first.
func (s *Stack) Entries() []StackEntry {
	return append([]StackEntry(nil), s.entries...)
}

// Set replaces all entries.
func (s *Stack) Set(entries []StackEntry) {
	s.entries = append(make([]StackEntry, 0, len(entries)), entries...)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
