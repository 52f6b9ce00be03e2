// Package vault stores the user's strategy notes.
package vault

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alias1177/TradeVault/internal/model"
)

// Store persists notes. List returns newest first.
type Store interface {
	Save(ctx context.Context, note model.Note) (model.Note, error)
	List(ctx context.Context, f Filter) ([]model.Note, error)
	Delete(ctx context.Context, id string) error
}

// Filter selects notes by text and category. Zero value matches everything.
type Filter struct {
	// Query is matched case-insensitively against title and content.
	Query string
	// Category must match exactly; "" or "All" matches any.
	Category string
	// Limit caps the result size when positive.
	Limit int
}

// Match reports whether the note passes the filter.
func (f Filter) Match(n model.Note) bool {
	if f.Category != "" && f.Category != "All" && n.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q)
}

// Prepare fills in the ID, date and category of a new note and rejects
// notes without a title.
func Prepare(n model.Note, now time.Time) (model.Note, error) {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return n, fmt.Errorf("%w: note title is empty", model.ErrInvalidParameter)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Date == "" {
		n.Date = now.UTC().Format(time.DateOnly)
	}
	if n.Category == "" {
		n.Category = model.CategoryIdea
	}
	return n, nil
}

// Seed saves the default notes when the store is empty. It returns the
// number of notes written.
func Seed(ctx context.Context, s Store) (int, error) {
	existing, err := s.List(ctx, Filter{Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("checking vault: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	defaults := DefaultNotes()
	// Saved in reverse so the first default ends up newest.
	for i := len(defaults) - 1; i >= 0; i-- {
		if _, err := s.Save(ctx, defaults[i]); err != nil {
			return len(defaults) - 1 - i, fmt.Errorf("seeding %q: %w", defaults[i].Title, err)
		}
	}
	return len(defaults), nil
}

// MemoryStore keeps notes in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	notes []model.Note // newest first
	now   func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, note model.Note) (model.Note, error) {
	note, err := Prepare(note, m.now())
	if err != nil {
		return model.Note{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.notes {
		if existing.ID == note.ID {
			m.notes[i] = note
			return note, nil
		}
	}
	m.notes = append([]model.Note{note}, m.notes...)
	return note, nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]model.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Note, 0, len(m.notes))
	for _, n := range m.notes {
		if !f.Match(n) {
			continue
		}
		out = append(out, n)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notes {
		if n.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", model.ErrNoteNotFound, id)
}
