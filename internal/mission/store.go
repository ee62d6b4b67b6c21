package mission

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"pmportal/internal/model"
	"pmportal/internal/pubsub"
	"pmportal/internal/session"
	"pmportal/internal/storage"
)

// Store owns the mission collection, including each mission's nested
// submissions and their comments.
type Store struct {
	logger   *slog.Logger
	storage  storage.Storage
	sessions *session.Store
	hub      *pubsub.Hub

	mu       sync.RWMutex
	missions []model.Mission
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
	data, err := s.storage.Load(ctx, storage.KeyMissions)
	if err == nil {
		var missions []model.Mission
		if jsonErr := json.Unmarshal(data, &missions); jsonErr == nil {
			s.missions = missions
			return
		}
		s.logger.Warn("discarding corrupt mission collection")
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		s.logger.Warn("failed to load missions", "error", err)
	}

	s.missions = model.MockMissions()
	s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) bool {
	data, err := json.Marshal(s.missions)
	if err != nil {
		s.logger.Error("failed to encode missions", "error", err)
		return false
	}
	if err := s.storage.Save(ctx, storage.KeyMissions, data); err != nil {
		s.logger.Error("failed to persist missions", "error", err)
		return false
	}
	return true
}

func (s *Store) index(id string) int {
	for i := range s.missions {
		if s.missions[i].ID == id {
			return i
		}
	}
	return -1
}

// AddParams carries the admin-entered fields of a new mission. UnitID may
// be a concrete unit or the model.UnitAll sentinel.
type AddParams struct {
	Title       string
	Description string
	Day         string
	UnitID      string
	UnitName    string
	DueDate     string
}

// AddMission appends a new mission stamped with actor as creator and an
// empty submissions list. A failed persist leaves the collection as it was.
func (s *Store) AddMission(ctx context.Context, actor model.Principal, params AddParams) bool {
	if !s.sessions.IsAuthenticated() {
		return false
	}

	mission := model.Mission{
		ID:          model.NewID(),
		Title:       params.Title,
		Description: params.Description,
		Day:         params.Day,
		UnitID:      params.UnitID,
		UnitName:    params.UnitName,
		CreatedAt:   model.ISOTime(time.Now()),
		DueDate:     params.DueDate,
		CreatedBy:   &model.ActorRef{ID: actor.ID, Name: actor.Name},
		Submissions: []model.Submission{},
	}

	s.mu.Lock()
	prev := s.missions
	s.missions = append(s.missions, mission)
	persisted := s.persist(ctx)
	if !persisted {
		s.missions = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// Patch holds partial mission updates; nil fields are left untouched.
// Id, creation stamp and submissions are never patchable.
type Patch struct {
	Title       *string
	Description *string
	Day         *string
	UnitID      *string
	UnitName    *string
	DueDate     *string
}

// UpdateMission merges patch into the matching mission.
func (s *Store) UpdateMission(ctx context.Context, id string, patch Patch) bool {
	s.mu.Lock()

	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	prev := s.missions[idx].Clone()
	if patch.Title != nil {
		s.missions[idx].Title = *patch.Title
	}
	if patch.Description != nil {
		s.missions[idx].Description = *patch.Description
	}
	if patch.Day != nil {
		s.missions[idx].Day = *patch.Day
	}
	if patch.UnitID != nil {
		s.missions[idx].UnitID = *patch.UnitID
	}
	if patch.UnitName != nil {
		s.missions[idx].UnitName = *patch.UnitName
	}
	if patch.DueDate != nil {
		s.missions[idx].DueDate = *patch.DueDate
	}

	persisted := s.persist(ctx)
	if !persisted {
		s.missions[idx] = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// DeleteMission removes the mission. Filter-based: an unknown id is a
// no-op that still reports success.
func (s *Store) DeleteMission(ctx context.Context, id string) bool {
	s.mu.Lock()

	prev := s.missions
	kept := make([]model.Mission, 0, len(prev))
	for _, mission := range prev {
		if mission.ID != id {
			kept = append(kept, mission)
		}
	}
	s.missions = kept

	persisted := s.persist(ctx)
	if !persisted {
		s.missions = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// SubmissionParams carries the caller-supplied part of a report upload.
// Who submitted it is taken from the actor, never from the caller.
type SubmissionParams struct {
	FileName string
	FileURL  string
	FileType string
	FileSize int64
}

// AddSubmission appends a report by actor to the mission's submissions.
// Nothing stops the same user submitting twice; the presentation layer
// assumes at most one per user but the store does not enforce it.
func (s *Store) AddSubmission(ctx context.Context, actor model.Principal, missionID string, params SubmissionParams) bool {
	if !s.sessions.IsAuthenticated() {
		return false
	}

	sub := model.Submission{
		ID:             model.NewID(),
		UserID:         actor.ID,
		UserName:       actor.Name,
		FileName:       params.FileName,
		FileURL:        params.FileURL,
		FileType:       params.FileType,
		FileSize:       params.FileSize,
		SubmissionDate: model.ISOTime(time.Now()),
	}

	s.mu.Lock()

	idx := s.index(missionID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	prev := s.missions[idx].Clone()
	s.missions[idx].Submissions = append(s.missions[idx].Submissions, sub)

	persisted := s.persist(ctx)
	if !persisted {
		s.missions[idx] = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// SubmissionPatch holds partial submission updates (a rename, typically).
type SubmissionPatch struct {
	FileName *string
	FileURL  *string
	FileType *string
	FileSize *int64
}

// UpdateSubmission merges patch into the matching submission of the
// matching mission.
func (s *Store) UpdateSubmission(ctx context.Context, missionID, submissionID string, patch SubmissionPatch) bool {
	s.mu.Lock()

	idx := s.index(missionID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	found := false
	prev := s.missions[idx].Clone()
	for j := range s.missions[idx].Submissions {
		if s.missions[idx].Submissions[j].ID != submissionID {
			continue
		}
		found = true
		sub := &s.missions[idx].Submissions[j]
		if patch.FileName != nil {
			sub.FileName = *patch.FileName
		}
		if patch.FileURL != nil {
			sub.FileURL = *patch.FileURL
		}
		if patch.FileType != nil {
			sub.FileType = *patch.FileType
		}
		if patch.FileSize != nil {
			sub.FileSize = *patch.FileSize
		}
		break
	}
	if !found {
		s.mu.Unlock()
		return false
	}

	persisted := s.persist(ctx)
	if !persisted {
		s.missions[idx] = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// DeleteSubmission removes a submission from the mission. Removal is
// filter-based, so an unknown submission id leaves the list unchanged and
// still reports success; an unknown mission id is rejected.
func (s *Store) DeleteSubmission(ctx context.Context, missionID, submissionID string) bool {
	s.mu.Lock()

	idx := s.index(missionID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	prev := s.missions[idx].Clone()
	kept := make([]model.Submission, 0, len(s.missions[idx].Submissions))
	for _, sub := range s.missions[idx].Submissions {
		if sub.ID != submissionID {
			kept = append(kept, sub)
		}
	}
	s.missions[idx].Submissions = kept

	persisted := s.persist(ctx)
	if !persisted {
		s.missions[idx] = prev
	}
	s.mu.Unlock()

	if persisted {
		s.hub.Publish()
	}
	return persisted
}

// ForUser returns the missions visible to a user of the given unit: the
// unit's own missions plus every "all" mission.
func (s *Store) ForUser(unitID string) []model.Mission {
	return s.filter(func(m model.Mission) bool {
		return m.UnitID == unitID || m.UnitID == model.UnitAll
	})
}

// ForUserOnDay narrows ForUser to a single weekday token.
func (s *Store) ForUserOnDay(unitID, day string) []model.Mission {
	return s.filter(func(m model.Mission) bool {
		return (m.UnitID == unitID || m.UnitID == model.UnitAll) && m.Day == day
	})
}

// ForUnit returns the missions whose unit id matches exactly. Unlike
// ForUser this does NOT include "all" missions; the original behaves the
// same way and callers depend on the asymmetry.
func (s *Store) ForUnit(unitID string) []model.Mission {
	return s.filter(func(m model.Mission) bool {
		return m.UnitID == unitID
	})
}

// All returns a copy of the whole collection.
func (s *Store) All() []model.Mission {
	return s.filter(func(model.Mission) bool { return true })
}

// MissionByID returns a copy of the matching mission.
func (s *Store) MissionByID(id string) (model.Mission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.index(id); idx >= 0 {
		return s.missions[idx].Clone(), true
	}
	return model.Mission{}, false
}

// SubmissionByID returns a copy of the matching submission.
func (s *Store) SubmissionByID(missionID, submissionID string) (model.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.index(missionID)
	if idx < 0 {
		return model.Submission{}, false
	}
	for _, sub := range s.missions[idx].Submissions {
		if sub.ID == submissionID {
			return sub.Clone(), true
		}
	}
	return model.Submission{}, false
}

func (s *Store) filter(keep func(model.Mission) bool) []model.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Mission, 0, len(s.missions))
	for _, mission := range s.missions {
		if keep(mission) {
			out = append(out, mission.Clone())
		}
	}
	return out
}

func (s *Store) Subscribe(fn func()) (cancel func()) {
	return s.hub.Subscribe(fn)
}
