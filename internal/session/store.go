// Package session holds the in-process session store that accumulates
// activity records and derives daily summaries from them.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
	"github.com/julianstephens/mindfulpath/internal/storage"
)

// Option configures a Store
type Option func(*Store)

// WithClock replaces the wall clock used for timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the random id generator for journal entries.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store is the session aggregate. Every mutation persists the full snapshot
// before it becomes visible; a failed write leaves the previous state in place.
type Store struct {
	provider storage.Provider
	key      string
	now      func() time.Time
	newID    func() string

	mu   sync.RWMutex
	data models.SessionData
}

func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		key:      constants.SessionStorageKey,
		now:      time.Now,
		newID:    uuid.NewString,
		data:     models.NewSessionData(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the persisted snapshot, or the
// empty state when nothing has been stored yet.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.provider.Get(ctx, s.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		s.mu.Lock()
		s.data = models.NewSessionData()
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	data := models.NewSessionData()
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse session: %w", err)
	}

	s.mu.Lock()
	s.data = normalize(data)
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.SessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(constants.TimestampFormat)
}

func (s *Store) today() string {
	return s.now().UTC().Format(constants.DateFormat)
}

// mutate applies fn to a copy of the state, persists the result and swaps it in.
func (s *Store) mutate(ctx context.Context, fn func(*models.SessionData) error) (models.SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(&next); err != nil {
		return models.SessionData{}, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return models.SessionData{}, fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.provider.Set(ctx, s.key, raw); err != nil {
		logger.Error("Failed to persist session", "key", s.key, "error", err)
		return models.SessionData{}, fmt.Errorf("failed to save session: %w", err)
	}

	s.data = next
	return next.Clone(), nil
}

// AddMoodEntry appends a mood rating. An empty label takes the standard label for the rating.
func (s *Store) AddMoodEntry(ctx context.Context, mood int, label string) (models.MoodEntry, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = constants.MoodLabels[mood]
	}
	entry := models.MoodEntry{
		Timestamp: s.timestamp(),
		Mood:      mood,
		Label:     label,
	}
	if err := models.Validate(entry); err != nil {
		return models.MoodEntry{}, err
	}

	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.MoodEntries = append(d.MoodEntries, entry)
		return nil
	})
	if err != nil {
		return models.MoodEntry{}, err
	}
	logger.Debug("Added mood entry", "mood", mood)
	return entry, nil
}

// AddBreathingExercise records a completed breathing session; duration is in seconds.
func (s *Store) AddBreathingExercise(ctx context.Context, duration, cycles int) (models.BreathingExercise, error) {
	exercise := models.BreathingExercise{
		Timestamp: s.timestamp(),
		Duration:  duration,
		Cycles:    cycles,
	}
	if err := models.Validate(exercise); err != nil {
		return models.BreathingExercise{}, err
	}

	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.BreathingExercises = append(d.BreathingExercises, exercise)
		return nil
	})
	if err != nil {
		return models.BreathingExercise{}, err
	}
	return exercise, nil
}

func (s *Store) AddGratitudeEntry(ctx context.Context, content string) (models.GratitudeEntry, error) {
	entry := models.GratitudeEntry{
		ID:        s.newID(),
		Content:   strings.TrimSpace(content),
		Timestamp: s.timestamp(),
	}
	if err := models.Validate(entry); err != nil {
		return models.GratitudeEntry{}, err
	}

	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.GratitudeEntries = append(d.GratitudeEntries, entry)
		return nil
	})
	if err != nil {
		return models.GratitudeEntry{}, err
	}
	return entry, nil
}

// RemoveGratitudeEntry deletes the entry with id. Unknown ids are a no-op.
func (s *Store) RemoveGratitudeEntry(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.GratitudeEntries = removeByID(d.GratitudeEntries, id, func(e models.GratitudeEntry) string { return e.ID })
		return nil
	})
	return err
}

func (s *Store) AddMindfulWriting(ctx context.Context, content string) (models.MindfulWriting, error) {
	writing := models.MindfulWriting{
		ID:        s.newID(),
		Content:   strings.TrimSpace(content),
		Timestamp: s.timestamp(),
	}
	if err := models.Validate(writing); err != nil {
		return models.MindfulWriting{}, err
	}

	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.MindfulWritings = append(d.MindfulWritings, writing)
		return nil
	})
	if err != nil {
		return models.MindfulWriting{}, err
	}
	return writing, nil
}

// RemoveMindfulWriting deletes the writing with id. Unknown ids are a no-op.
func (s *Store) RemoveMindfulWriting(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.MindfulWritings = removeByID(d.MindfulWritings, id, func(w models.MindfulWriting) string { return w.ID })
		return nil
	})
	return err
}

// AddMemoryGameResult records a finished game; timeElapsed is in seconds.
func (s *Store) AddMemoryGameResult(ctx context.Context, moves, timeElapsed int, won bool) (models.MemoryGameStat, error) {
	stat := models.MemoryGameStat{
		Timestamp:   s.timestamp(),
		Moves:       moves,
		TimeElapsed: timeElapsed,
		Won:         won,
	}
	if err := models.Validate(stat); err != nil {
		return models.MemoryGameStat{}, err
	}

	_, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.MemoryGameStats = append(d.MemoryGameStats, stat)
		return nil
	})
	if err != nil {
		return models.MemoryGameStat{}, err
	}
	return stat, nil
}

// Clear drops every record and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.provider.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.data = models.NewSessionData()
	logger.Info("Session cleared", "key", s.key)
	return nil
}

// Replace swaps in a whole session, as when restoring an export.
func (s *Store) Replace(ctx context.Context, data models.SessionData) (models.SessionData, error) {
	data = normalize(data.Clone())
	if err := Validate(data); err != nil {
		return models.SessionData{}, err
	}
	return s.mutate(ctx, func(d *models.SessionData) error {
		*d = data
		return nil
	})
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

// normalize replaces nil lists so snapshots always serialize as arrays.
func normalize(d models.SessionData) models.SessionData {
	empty := models.NewSessionData()
	if d.MoodEntries == nil {
		d.MoodEntries = empty.MoodEntries
	}
	if d.BreathingExercises == nil {
		d.BreathingExercises = empty.BreathingExercises
	}
	if d.GratitudeEntries == nil {
		d.GratitudeEntries = empty.GratitudeEntries
	}
	if d.MindfulWritings == nil {
		d.MindfulWritings = empty.MindfulWritings
	}
	if d.MemoryGameStats == nil {
		d.MemoryGameStats = empty.MemoryGameStats
	}
	if d.SelfCare.Habits == nil {
		d.SelfCare.Habits = empty.SelfCare.Habits
	}
	if d.SelfCare.Goals == nil {
		d.SelfCare.Goals = empty.SelfCare.Goals
	}
	if d.SelfCare.EnergyLevels == nil {
		d.SelfCare.EnergyLevels = empty.SelfCare.EnergyLevels
	}
	return d
}

// Validate checks every record in d against its model constraints.
func Validate(d models.SessionData) error {
	var records []any
	for _, r := range d.MoodEntries {
		records = append(records, r)
	}
	for _, r := range d.BreathingExercises {
		records = append(records, r)
	}
	for _, r := range d.GratitudeEntries {
		records = append(records, r)
	}
	for _, r := range d.MindfulWritings {
		records = append(records, r)
	}
	for _, r := range d.MemoryGameStats {
		records = append(records, r)
	}
	for _, r := range d.SelfCare.Habits {
		records = append(records, r)
	}
	for _, r := range d.SelfCare.Goals {
		records = append(records, r)
	}
	for _, r := range d.SelfCare.EnergyLevels {
		records = append(records, r)
	}
	for _, r := range records {
		if err := models.Validate(r); err != nil {
			return err
		}
	}
	return nil
}
