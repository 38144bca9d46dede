package demo

import (
	"strings"
	"sync"

	"github.com/vango-dev/feather/pkg/render"
)

// Todo is one entry of the list. It interpolates as its escaped title.
type Todo struct {
	Title string
	Done  bool
}

// String implements fmt.Stringer.
func (t Todo) String() string {
	return render.Escape(t.Title)
}

// Store holds todos. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	todos []Todo
}

// NewStore creates a store with the given titles.
func NewStore(titles ...string) *Store {
	s := &Store{}
	for _, title := range titles {
		s.Add(title)
	}
	return s
}

// Add appends a todo. Blank titles are ignored.
func (s *Store) Add(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	s.mu.Lock()
	s.todos = append(s.todos, Todo{Title: title})
	s.mu.Unlock()
	return true
}

// Toggle flips the done state of the todo at i.
func (s *Store) Toggle(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.todos) {
		return false
	}
	s.todos[i].Done = !s.todos[i].Done
	return true
}

// Remove deletes the todo at i.
func (s *Store) Remove(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.todos) {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return true
}

// List returns a snapshot of the todos.
func (s *Store) List() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Todo(nil), s.todos...)
}

// Len returns the number of todos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}
