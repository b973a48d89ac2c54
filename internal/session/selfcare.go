package session

import (
	"context"

	"github.com/julianstephens/mindfulpath/internal/models"
)

// UpdateSelfCareHabits replaces the habit list wholesale. Entries without a
// timestamp are stamped with the current time.
func (s *Store) UpdateSelfCareHabits(ctx context.Context, habits []models.Habit) ([]models.Habit, error) {
	stamped, err := s.stampHabits(habits)
	if err != nil {
		return nil, err
	}
	next, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.SelfCare.Habits = stamped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.SelfCare.Habits, nil
}

// UpdateSelfCareGoals replaces the goal list wholesale.
func (s *Store) UpdateSelfCareGoals(ctx context.Context, goals []models.Goal) ([]models.Goal, error) {
	stamped, err := s.stampGoals(goals)
	if err != nil {
		return nil, err
	}
	next, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.SelfCare.Goals = stamped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.SelfCare.Goals, nil
}

// UpdateEnergyLevels replaces the energy readings wholesale.
func (s *Store) UpdateEnergyLevels(ctx context.Context, levels []models.EnergyLevel) ([]models.EnergyLevel, error) {
	stamped, err := s.stampEnergy(levels)
	if err != nil {
		return nil, err
	}
	next, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.SelfCare.EnergyLevels = stamped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.SelfCare.EnergyLevels, nil
}

// MergeSelfCareHabits upserts habits by id and keeps habits not named in the update.
func (s *Store) MergeSelfCareHabits(ctx context.Context, habits []models.Habit) ([]models.Habit, error) {
	stamped, err := s.stampHabits(habits)
	if err != nil {
		return nil, err
	}
	next, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.SelfCare.Habits = mergeBy(d.SelfCare.Habits, stamped, func(h models.Habit) string { return h.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.SelfCare.Habits, nil
}

// MergeSelfCareGoals upserts goals by id.
func (s *Store) MergeSelfCareGoals(ctx context.Context, goals []models.Goal) ([]models.Goal, error) {
	stamped, err := s.stampGoals(goals)
	if err != nil {
		return nil, err
	}
	next, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.SelfCare.Goals = mergeBy(d.SelfCare.Goals, stamped, func(g models.Goal) string { return g.ID })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.SelfCare.Goals, nil
}

// MergeEnergyLevels upserts readings by time of day.
func (s *Store) MergeEnergyLevels(ctx context.Context, levels []models.EnergyLevel) ([]models.EnergyLevel, error) {
	stamped, err := s.stampEnergy(levels)
	if err != nil {
		return nil, err
	}
	next, err := s.mutate(ctx, func(d *models.SessionData) error {
		d.SelfCare.EnergyLevels = mergeBy(d.SelfCare.EnergyLevels, stamped, func(e models.EnergyLevel) string { return string(e.Time) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next.SelfCare.EnergyLevels, nil
}

func (s *Store) stampHabits(in []models.Habit) ([]models.Habit, error) {
	out := make([]models.Habit, len(in))
	now := s.timestamp()
	for i, h := range in {
		if h.Timestamp == "" {
			h.Timestamp = now
		}
		if err := models.Validate(h); err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

func (s *Store) stampGoals(in []models.Goal) ([]models.Goal, error) {
	out := make([]models.Goal, len(in))
	now := s.timestamp()
	for i, g := range in {
		if g.Timestamp == "" {
			g.Timestamp = now
		}
		if err := models.Validate(g); err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func (s *Store) stampEnergy(in []models.EnergyLevel) ([]models.EnergyLevel, error) {
	out := make([]models.EnergyLevel, len(in))
	now := s.timestamp()
	for i, e := range in {
		if e.Timestamp == "" {
			e.Timestamp = now
		}
		if err := models.Validate(e); err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// mergeBy replaces items of current whose key appears in updates, in place,
// and appends the remaining updates in their given order.
func mergeBy[T any](current, updates []T, key func(T) string) []T {
	index := make(map[string]int, len(current))
	out := append([]T{}, current...)
	for i, item := range out {
		index[key(item)] = i
	}
	for _, u := range updates {
		if i, ok := index[key(u)]; ok {
			out[i] = u
			continue
		}
		index[key(u)] = len(out)
		out = append(out, u)
	}
	return out
}
