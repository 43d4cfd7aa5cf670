package engine

import (
	"context"
	"fmt"
	"strings"
)

// CompanionView bundles everything the status screens need about the
// companion: raw XP numbers plus the resolved evolution state.
type CompanionView struct {
	Species     string
	Level       int
	XPTotal     int
	NextLevelAt int
	XPToNext    int

	Evolution EvolutionState
}

func (s *Service) CompanionState(ctx context.Context) (*CompanionView, error) {
	c, err := s.getCompanion(ctx)
	if err != nil {
		return nil, err
	}

	nextAt := XPRequiredForLevel(c.Level + 1)
	toNext := nextAt - c.XPTotal
	if toNext < 0 {
		toNext = 0
	}

	return &CompanionView{
		Species:     c.Species,
		Level:       c.Level,
		XPTotal:     c.XPTotal,
		NextLevelAt: nextAt,
		XPToNext:    toNext,
		Evolution:   Resolve(c.Species, c.Level),
	}, nil
}

// AdoptSpecies switches the companion to another known species. Level
// and XP carry over; the creature changes shape, not history.
func (s *Service) AdoptSpecies(ctx context.Context, species string) (*CompanionView, error) {
	key := strings.TrimSpace(strings.ToLower(species))
	if !KnownSpecies(key) {
		return nil, fmt.Errorf("unknown species %q (known: %s)", species, strings.Join(SpeciesNames(), ", "))
	}

	c, err := s.getCompanion(ctx)
	if err != nil {
		return nil, err
	}
	c.Species = key
	if err := s.companions.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.CompanionState(ctx)
}
