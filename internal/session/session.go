// Package session owns the documents being edited. Each session binds one
// document to one variant and serialises the edits made to it.
package session

import (
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/types"
)

// Session is one document being edited.
type Session struct {
	ID        string
	Variant   *types.Variant
	CreatedAt time.Time

	store     *document.Store
	projector *preview.Projector

	mu       sync.Mutex
	doc      types.Document
	lastUsed time.Time
	now      func() time.Time
}

func newSession(id string, v *types.Variant, now func() time.Time) *Session {
	store := document.NewStore(v)
	created := now()
	return &Session{
		ID:        id,
		Variant:   v,
		CreatedAt: created,
		store:     store,
		projector: preview.NewProjector(v),
		doc:       store.New(),
		lastUsed:  created,
		now:       now,
	}
}

// Snapshot returns a copy of the current document.
func (s *Session) Snapshot() types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()
	return s.doc.Clone()
}

// Apply runs an op script against the current document. On error the
// document is left unchanged.
func (s *Session) Apply(ops []document.Op) (types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()

	next, err := s.store.ApplyAll(s.doc, ops)
	if err != nil {
		return s.doc.Clone(), err
	}
	s.doc = next
	return s.doc.Clone(), nil
}

// Replace swaps in a document read from outside, after normalizing it.
func (s *Session) Replace(doc types.Document) (types.Document, error) {
	normalized, err := s.store.Normalize(doc)
	if err != nil {
		return types.Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()
	s.doc = normalized
	return s.doc.Clone(), nil
}

// View projects the current document.
func (s *Session) View() types.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = s.now()
	return s.projector.Project(s.doc)
}

func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed.Before(t)
}
