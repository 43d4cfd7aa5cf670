package engine

import (
	"context"
	"database/sql"

	"denling/internal/storage"
)

type CheckInResult struct {
	// AlreadyCheckedIn is true when today's activity was recorded
	// before; nothing was paid out and nothing changed.
	AlreadyCheckedIn bool

	Streak         int
	LongestStreak  int
	Reward         *Reward
	ProtectionUsed bool

	LevelBefore int
	LevelAfter  int
	LevelUp     bool

	// Evolved is set when the XP from the reward pushed the companion
	// across a stage boundary.
	Evolved *Stage
}

// CheckIn records today's qualifying activity: it advances the streak,
// credits the coin reward to the wallet, feeds the XP to the companion
// and reports any level-up or evolution. Repeating it on the same day
// is a no-op.
func (s *Service) CheckIn(ctx context.Context) (*CheckInResult, error) {
	var res *CheckInResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		r, err := s.checkIn(ctx, tx)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// checkIn runs the payout sequence against tx-bound repos so the wallet
// credit, companion XP and audit row land together or not at all. A
// partial write would otherwise set LastActivityDate and let the
// same-day guard swallow the retry.
func (s *Service) checkIn(ctx context.Context, tx *sql.Tx) (*CheckInResult, error) {
	profiles := s.profiles.InTx(tx)
	companions := s.companions.InTx(tx)
	checkins := s.checkins.InTx(tx)

	p, err := profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	c, err := loadCompanion(ctx, companions)
	if err != nil {
		return nil, err
	}

	rec := StreakRecordOf(p)
	today := s.now()

	updated, reward := RecordActivity(rec, today)
	if reward == nil {
		return &CheckInResult{
			AlreadyCheckedIn: true,
			Streak:           rec.CurrentStreak,
			LongestStreak:    rec.LongestStreak,
			LevelBefore:      c.Level,
			LevelAfter:       c.Level,
		}, nil
	}
	protectionUsed := rec.ProtectionActive && !updated.ProtectionActive

	applyStreak(p, updated)
	p.Coins += reward.Coins
	if err := profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	levelBefore := c.Level
	c.XPTotal += reward.XP
	c.Level = LevelForTotalXP(c.XPTotal)
	if err := companions.Update(ctx, c); err != nil {
		return nil, err
	}

	if _, err := checkins.Insert(ctx, DateOnly(today), updated.CurrentStreak, reward.Coins, reward.XP); err != nil {
		return nil, err
	}

	return &CheckInResult{
		Streak:         updated.CurrentStreak,
		LongestStreak:  updated.LongestStreak,
		Reward:         reward,
		ProtectionUsed: protectionUsed,
		LevelBefore:    levelBefore,
		LevelAfter:     c.Level,
		LevelUp:        c.Level > levelBefore,
		Evolved:        CheckTransition(c.Species, levelBefore, c.Level),
	}, nil
}

// ActivateProtection arms the owner's streak protection token. It
// reports false when a token is already armed.
func (s *Service) ActivateProtection(ctx context.Context) (bool, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return false, err
	}
	rec, ok := ActivateProtection(StreakRecordOf(p))
	if !ok {
		return false, nil
	}
	applyStreak(p, rec)
	if err := s.profiles.Update(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// StreakAtRisk reports whether today's check-in is still missing while
// there is a streak to lose.
func (s *Service) StreakAtRisk(ctx context.Context) (bool, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return false, err
	}
	return IsAtRisk(StreakRecordOf(p), s.now()), nil
}
