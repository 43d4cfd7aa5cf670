package engine

import (
	"fmt"
	"sort"
)

// Stage is one tier of a companion's appearance and abilities, bound to
// a contiguous level range. MaxLevel of StageMaxOpen marks the final,
// unbounded stage.
type Stage struct {
	Index          int
	Name           string
	MinLevel       int
	MaxLevel       int
	SizeMultiplier float64
	Features       []string
	UnlockMessage  string
}

const StageMaxOpen = -1

// EvolutionState describes where a companion sits inside its species'
// stage ladder at a given level.
type EvolutionState struct {
	Current Stage
	Next    *Stage

	// ProgressPercent is how far through the current stage's level
	// range the companion is (0-100); 100 once the final stage is
	// reached. LevelsToNext is 0 on the final stage.
	ProgressPercent int
	LevelsToNext    int
}

// DefaultSpecies is used when a companion row carries a species key
// with no stage table. Falling back keeps every companion renderable
// rather than failing the lookup.
const DefaultSpecies = "sprig"

func builtinSpecies() map[string][]Stage {
	return map[string][]Stage{
		"sprig": {
			{Index: 1, Name: "Seed", MinLevel: 1, MaxLevel: 4, SizeMultiplier: 0.5,
				Features: []string{"shell"},
				UnlockMessage: "A tiny seed stirs in the soil."},
			{Index: 2, Name: "Sprout", MinLevel: 5, MaxLevel: 9, SizeMultiplier: 0.7,
				Features: []string{"leaves", "wiggle"},
				UnlockMessage: "Your seed cracked open — say hello to your Sprout!"},
			{Index: 3, Name: "Sapling", MinLevel: 10, MaxLevel: 24, SizeMultiplier: 1.0,
				Features: []string{"leaves", "wiggle", "blossom"},
				UnlockMessage: "The Sprout shot up overnight. It's a Sapling now!"},
			{Index: 4, Name: "Bloomwarden", MinLevel: 25, MaxLevel: 49, SizeMultiplier: 1.3,
				Features: []string{"leaves", "blossom", "aura"},
				UnlockMessage: "Petals everywhere — the Sapling became a Bloomwarden!"},
			{Index: 5, Name: "Elderbloom", MinLevel: 50, MaxLevel: StageMaxOpen, SizeMultiplier: 1.6,
				Features: []string{"leaves", "blossom", "aura", "crown"},
				UnlockMessage: "An Elderbloom. Songs will be written about this."},
		},
		"ember": {
			{Index: 1, Name: "Cinder", MinLevel: 1, MaxLevel: 4, SizeMultiplier: 0.5,
				Features: []string{"glow"},
				UnlockMessage: "A warm little cinder blinks awake."},
			{Index: 2, Name: "Kit", MinLevel: 5, MaxLevel: 9, SizeMultiplier: 0.7,
				Features: []string{"glow", "tail"},
				UnlockMessage: "The cinder grew paws — it's a Kit!"},
			{Index: 3, Name: "Flarefox", MinLevel: 10, MaxLevel: 24, SizeMultiplier: 1.0,
				Features: []string{"glow", "tail", "sparks"},
				UnlockMessage: "Your Kit burst into flame. Flarefox unlocked!"},
			{Index: 4, Name: "Blazetail", MinLevel: 25, MaxLevel: 49, SizeMultiplier: 1.3,
				Features: []string{"tail", "sparks", "wildfire"},
				UnlockMessage: "Nine tails of fire — behold the Blazetail!"},
			{Index: 5, Name: "Solarch", MinLevel: 50, MaxLevel: StageMaxOpen, SizeMultiplier: 1.6,
				Features: []string{"sparks", "wildfire", "corona"},
				UnlockMessage: "A Solarch rises. Please keep away from curtains."},
		},
		"ripple": {
			{Index: 1, Name: "Droplet", MinLevel: 1, MaxLevel: 4, SizeMultiplier: 0.5,
				Features: []string{"shimmer"},
				UnlockMessage: "A single droplet, full of promise."},
			{Index: 2, Name: "Puddlet", MinLevel: 5, MaxLevel: 9, SizeMultiplier: 0.7,
				Features: []string{"shimmer", "splash"},
				UnlockMessage: "The droplet found friends. Puddlet achieved!"},
			{Index: 3, Name: "Streamling", MinLevel: 10, MaxLevel: 24, SizeMultiplier: 1.0,
				Features: []string{"shimmer", "splash", "current"},
				UnlockMessage: "Your Puddlet is on the move — a Streamling!"},
			{Index: 4, Name: "Tidecaller", MinLevel: 25, MaxLevel: 49, SizeMultiplier: 1.3,
				Features: []string{"splash", "current", "waves"},
				UnlockMessage: "The tide answers. Tidecaller unlocked!"},
			{Index: 5, Name: "Abysswarden", MinLevel: 50, MaxLevel: StageMaxOpen, SizeMultiplier: 1.6,
				Features: []string{"current", "waves", "depths"},
				UnlockMessage: "From the deep: an Abysswarden."},
		},
	}
}

// speciesTable is loaded once and treated as immutable. ValidateSpecies
// is run at startup before anything reads it.
var speciesTable = builtinSpecies()

// SpeciesNames returns the known species keys, sorted.
func SpeciesNames() []string {
	names := make([]string, 0, len(speciesTable))
	for k := range speciesTable {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// KnownSpecies reports whether the key has its own stage table.
func KnownSpecies(species string) bool {
	_, ok := speciesTable[species]
	return ok
}

func stagesFor(species string) []Stage {
	if stages, ok := speciesTable[species]; ok {
		return stages
	}
	return speciesTable[DefaultSpecies]
}

// Resolve maps a companion level onto its species' stage ladder.
// Unknown species fall back to DefaultSpecies. Levels below the first
// stage's range clamp to the first stage.
func Resolve(species string, level int) EvolutionState {
	stages := stagesFor(species)

	cur := stages[0]
	for _, st := range stages {
		if level >= st.MinLevel && (st.MaxLevel == StageMaxOpen || level <= st.MaxLevel) {
			cur = st
			break
		}
	}

	var next *Stage
	for i := range stages {
		if stages[i].Index == cur.Index && i+1 < len(stages) {
			n := stages[i+1]
			next = &n
			break
		}
	}

	if next == nil {
		return EvolutionState{Current: cur, ProgressPercent: 100, LevelsToNext: 0}
	}

	span := cur.MaxLevel - cur.MinLevel + 1
	progress := 100 * (level - cur.MinLevel) / span
	if progress < 0 {
		progress = 0
	}
	return EvolutionState{
		Current:         cur,
		Next:            next,
		ProgressPercent: progress,
		LevelsToNext:    next.MinLevel - level,
	}
}

// CheckTransition returns the stage a companion evolved into when
// moving from oldLevel to newLevel, or nil when no stage boundary was
// crossed upward. Only the final stage reached is reported: a jump
// across several boundaries fires once, for the stage newLevel lands
// in, never retroactively for the skipped ones.
func CheckTransition(species string, oldLevel, newLevel int) *Stage {
	before := Resolve(species, oldLevel)
	after := Resolve(species, newLevel)
	if after.Current.Index > before.Current.Index {
		st := after.Current
		return &st
	}
	return nil
}

// ValidateSpecies checks every stage table once at startup: ascending
// contiguous ranges, ascending indexes, exactly one open-ended final
// stage, and a present default species. A failure here is fatal
// configuration, not a per-call error.
func ValidateSpecies() error {
	if _, ok := speciesTable[DefaultSpecies]; !ok {
		return fmt.Errorf("default species %q has no stage table", DefaultSpecies)
	}
	for species, stages := range speciesTable {
		if len(stages) == 0 {
			return fmt.Errorf("species %q has no stages", species)
		}
		for i, st := range stages {
			if st.Index != i+1 {
				return fmt.Errorf("species %q stage %d: index %d out of order", species, i, st.Index)
			}
			last := i == len(stages)-1
			if last {
				if st.MaxLevel != StageMaxOpen {
					return fmt.Errorf("species %q: final stage %q must be open-ended", species, st.Name)
				}
			} else {
				if st.MaxLevel == StageMaxOpen {
					return fmt.Errorf("species %q: only the final stage may be open-ended", species)
				}
				if st.MaxLevel < st.MinLevel {
					return fmt.Errorf("species %q stage %q: empty level range [%d,%d]", species, st.Name, st.MinLevel, st.MaxLevel)
				}
				if stages[i+1].MinLevel != st.MaxLevel+1 {
					return fmt.Errorf("species %q: gap between stage %q (max %d) and %q (min %d)",
						species, st.Name, st.MaxLevel, stages[i+1].Name, stages[i+1].MinLevel)
				}
			}
		}
	}
	return nil
}
