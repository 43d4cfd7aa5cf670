package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"denling/internal/storage"
)

// Service is the surface the CLI and TUI talk to. It loads the small
// persisted records, runs the pure progression rules on them, and
// writes the results back. All decision logic lives in the package
// functions; Service only orchestrates.
type Service struct {
	db         *sql.DB
	profiles   *storage.ProfileRepo
	companions *storage.CompanionRepo
	tasks      *storage.TaskRepo
	checkins   *storage.CheckinRepo

	// now is swappable in tests to walk the calendar.
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:         db,
		profiles:   storage.NewProfileRepo(db),
		companions: storage.NewCompanionRepo(db),
		tasks:      storage.NewTaskRepo(db),
		checkins:   storage.NewCheckinRepo(db),
		now:        time.Now,
	}
}

func (s *Service) ProfileRepo() *storage.ProfileRepo     { return s.profiles }
func (s *Service) CompanionRepo() *storage.CompanionRepo { return s.companions }
func (s *Service) TaskRepo() *storage.TaskRepo           { return s.tasks }
func (s *Service) CheckinRepo() *storage.CheckinRepo     { return s.checkins }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

func (s *Service) getProfile(ctx context.Context) (*storage.Profile, error) {
	return s.profiles.GetOrCreateMain(ctx)
}

func (s *Service) getCompanion(ctx context.Context) (*storage.Companion, error) {
	return loadCompanion(ctx, s.companions)
}

// loadCompanion fetches (or hatches) the companion and recomputes its
// level from banked XP, persisting the correction when the stored level
// drifted.
func loadCompanion(ctx context.Context, repo *storage.CompanionRepo) (*storage.Companion, error) {
	c, err := repo.GetOrCreateMain(ctx, DefaultSpecies)
	if err != nil {
		return nil, err
	}
	computed := LevelForTotalXP(c.XPTotal)
	if c.Level != computed {
		c.Level = computed
		if err := repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// StreakRecordOf maps the persisted profile row onto the pure engine
// value. The inverse mapping happens in applyStreak.
func StreakRecordOf(p *storage.Profile) StreakRecord {
	return StreakRecord{
		CurrentStreak:        p.CurrentStreak,
		LongestStreak:        p.LongestStreak,
		LastActivity:         p.LastActivityDate,
		ProtectionActive:     p.ProtectionActive,
		ProtectionConsumedOn: p.ProtectionConsumedOn,
	}
}

func applyStreak(p *storage.Profile, rec StreakRecord) {
	p.CurrentStreak = rec.CurrentStreak
	p.LongestStreak = rec.LongestStreak
	p.LastActivityDate = rec.LastActivity
	p.ProtectionActive = rec.ProtectionActive
	p.ProtectionConsumedOn = rec.ProtectionConsumedOn
}
