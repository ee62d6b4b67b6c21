package document

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pmportal/internal/model"
	"pmportal/internal/pubsub"
	"pmportal/internal/session"
	"pmportal/internal/storage"
)

// Store owns the document collection. Documents are created by uploads,
// commented on and re-statused by admins, and never deleted.
type Store struct {
	logger   *slog.Logger
	storage  storage.Storage
	sessions *session.Store
	hub      *pubsub.Hub

	mu        sync.RWMutex
	documents []model.Document
}

func NewStore(ctx context.Context, logger *slog.Logger, store storage.Storage, sessions *session.Store) *Store {
	s := &Store{
		logger:   logger,
		storage:  store,
		sessions: sessions,
		hub:      pubsub.NewHub(),
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, err := s.storage.Load(ctx, storage.KeyDocuments)
	if err == nil {
		var documents []model.Document
		if jsonErr := json.Unmarshal(data, &documents); jsonErr == nil {
			s.documents = documents
			return
		}
		s.logger.Warn("discarding corrupt document collection")
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		s.logger.Warn("failed to load documents", "error", err)
	}

	s.documents = model.MockDocuments()
	s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) bool {
	data, err := json.Marshal(s.documents)
	if err != nil {
		s.logger.Error("failed to encode documents", "error", err)
		return false
	}
	if err := s.storage.Save(ctx, storage.KeyDocuments, data); err != nil {
		s.logger.Error("failed to persist documents", "error", err)
		return false
	}
	return true
}

// SubmitParams carries the caller-supplied part of a new document. Id,
// submission date, status and submitter are always computed here; whatever
// the form validated or didn't, a new document starts out pending.
type SubmitParams struct {
	Title        string
	Description  string
	UnitID       string
	UnitName     string
	DocumentDate string
	FileURL      string
	FileName     string
	FileType     string
	FileSize     int64
}

// Submit appends a new pending document attributed to actor. Returns
// false without a session or when the persist fails; a failed persist
// leaves the collection exactly as it was.
func (s *Store) Submit(ctx context.Context, actor model.Principal, params SubmitParams) bool {
	if !s.sessions.IsAuthenticated() {
		return false
	}

	doc := model.Document{
		ID:             model.NewID(),
		Title:          params.Title,
		Description:    params.Description,
		UnitID:         params.UnitID,
		UnitName:       params.UnitName,
		DocumentDate:   params.DocumentDate,
		SubmissionDate: model.ISOTime(time.Now()),
		Status:         model.StatusPending,
		FileURL:        params.FileURL,
		FileName:       params.FileName,
		FileType:       params.FileType,
		FileSize:       params.FileSize,
		SubmittedBy:    model.ActorRef{ID: actor.ID, Name: actor.Name},
	}

	s.mu.Lock()
	prev := s.documents
	s.documents = append(s.documents, doc)
	persisted := s.persist(ctx)
	if !persisted {
		s.documents = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// SetStatus updates a document's status and optionally appends a comment
// attributed to actor.
func (s *Store) SetStatus(ctx context.Context, actor model.Principal, id string, status model.DocumentStatus, comment string) bool {
	if !s.sessions.IsAuthenticated() {
		return false
	}

	s.mu.Lock()

	idx := -1
	for i := range s.documents {
		if s.documents[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	prev := s.documents[idx].Clone()
	s.documents[idx].Status = status
	if comment != "" {
		s.documents[idx].Comments = append(s.documents[idx].Comments, model.Comment{
			ID:     model.NewID(),
			Text:   comment,
			Date:   model.ISOTime(time.Now()),
			Author: model.ActorRef{ID: actor.ID, Name: actor.Name},
		})
	}

	persisted := s.persist(ctx)
	if !persisted {
		s.documents[idx] = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// AddComment appends a comment by actor to the named document. Blank or
// whitespace-only text is rejected before anything mutates.
func (s *Store) AddComment(ctx context.Context, actor model.Principal, documentID, text string) bool {
	if !s.sessions.IsAuthenticated() || strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()

	idx := -1
	for i := range s.documents {
		if s.documents[i].ID == documentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	prev := s.documents[idx].Clone()
	s.documents[idx].Comments = append(s.documents[idx].Comments, model.Comment{
		ID:     model.NewID(),
		Text:   text,
		Date:   model.ISOTime(time.Now()),
		Author: model.ActorRef{ID: actor.ID, Name: actor.Name},
	})

	persisted := s.persist(ctx)
	if !persisted {
		s.documents[idx] = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// ByUser returns the documents submitted by the given user id.
func (s *Store) ByUser(userID string) []model.Document {
	return s.filter(func(doc model.Document) bool {
		return doc.SubmittedBy.ID == userID
	})
}

// ByUnit returns the documents belonging to the given unit id.
func (s *Store) ByUnit(unitID string) []model.Document {
	return s.filter(func(doc model.Document) bool {
		return doc.UnitID == unitID
	})
}

// All returns a copy of the whole collection.
func (s *Store) All() []model.Document {
	return s.filter(func(model.Document) bool { return true })
}

// ByID returns a copy of the matching document.
func (s *Store) ByID(id string) (model.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.ID == id {
			return doc.Clone(), true
		}
	}
	return model.Document{}, false
}

func (s *Store) filter(keep func(model.Document) bool) []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if keep(doc) {
			out = append(out, doc.Clone())
		}
	}
	return out
}

func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.hub.Subscribe(fn)
}
