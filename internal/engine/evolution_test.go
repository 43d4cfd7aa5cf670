package engine

import "testing"

func TestValidateSpecies(t *testing.T) {
	if err := ValidateSpecies(); err != nil {
		t.Fatalf("ValidateSpecies: %v", err)
	}
}

func TestStageCoverage(t *testing.T) {
	// Every level in 1..999 must land in exactly one stage per species.
	for _, species := range SpeciesNames() {
		prevIndex := 0
		for level := 1; level <= 999; level++ {
			st := Resolve(species, level).Current
			matches := 0
			for _, s := range builtinSpecies()[species] {
				if level >= s.MinLevel && (s.MaxLevel == StageMaxOpen || level <= s.MaxLevel) {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("%s level %d matches %d stages, want 1", species, level, matches)
			}
			if st.Index < prevIndex {
				t.Fatalf("%s level %d: stage index went backwards (%d after %d)", species, level, st.Index, prevIndex)
			}
			prevIndex = st.Index
		}
	}
}

func TestResolveProgress(t *testing.T) {
	// Sapling spans 10-24 (15 levels); next stage starts at 25.
	st := Resolve("sprig", 10)
	if st.Current.Name != "Sapling" {
		t.Fatalf("level 10 stage = %s, want Sapling", st.Current.Name)
	}
	if st.ProgressPercent != 0 {
		t.Fatalf("progress at range start = %d, want 0", st.ProgressPercent)
	}
	if st.LevelsToNext != 15 {
		t.Fatalf("levels to next = %d, want 15", st.LevelsToNext)
	}

	st = Resolve("sprig", 17)
	// floor(100 * (17-10) / 15) = 46
	if st.ProgressPercent != 46 {
		t.Fatalf("progress at level 17 = %d, want 46", st.ProgressPercent)
	}
	if st.LevelsToNext != 8 {
		t.Fatalf("levels to next at 17 = %d, want 8", st.LevelsToNext)
	}

	st = Resolve("sprig", 24)
	// floor(100 * 14/15) = 93; never reports 100 before the boundary.
	if st.ProgressPercent != 93 {
		t.Fatalf("progress at range end = %d, want 93", st.ProgressPercent)
	}
	if st.LevelsToNext != 1 {
		t.Fatalf("levels to next at 24 = %d, want 1", st.LevelsToNext)
	}
}

func TestResolveFinalStage(t *testing.T) {
	st := Resolve("ember", 50)
	if st.Current.Name != "Solarch" || st.Next != nil {
		t.Fatalf("level 50 = %s (next %v), want final Solarch", st.Current.Name, st.Next)
	}
	if st.ProgressPercent != 100 || st.LevelsToNext != 0 {
		t.Fatalf("final stage progress = %d/%d, want 100/0", st.ProgressPercent, st.LevelsToNext)
	}

	st = Resolve("ember", 400)
	if st.Current.Name != "Solarch" {
		t.Fatalf("level 400 = %s, want Solarch (open-ended)", st.Current.Name)
	}
}

func TestResolveUnknownSpeciesFallsBack(t *testing.T) {
	got := Resolve("chupacabra", 12)
	want := Resolve(DefaultSpecies, 12)
	if got.Current.Name != want.Current.Name {
		t.Fatalf("unknown species resolved to %s, want default %s", got.Current.Name, want.Current.Name)
	}
}

func TestCheckTransition(t *testing.T) {
	// Crossing one boundary fires for the stage entered.
	st := CheckTransition("sprig", 4, 5)
	if st == nil || st.Name != "Sprout" {
		t.Fatalf("4→5 = %v, want Sprout", st)
	}

	// A jump across several boundaries reports only the final stage.
	st = CheckTransition("sprig", 9, 40)
	if st == nil || st.Name != "Bloomwarden" {
		t.Fatalf("9→40 = %v, want Bloomwarden", st)
	}

	// No boundary crossed.
	if st := CheckTransition("sprig", 11, 20); st != nil {
		t.Fatalf("11→20 = %v, want nil", st)
	}

	// Level loss never reports an evolution.
	if st := CheckTransition("sprig", 30, 8); st != nil {
		t.Fatalf("30→8 = %v, want nil", st)
	}
}
