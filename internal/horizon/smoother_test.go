package horizon

import "testing"

func TestSmooth_RejectsLargeJump(t *testing.T) {
	// Raw heights 0,0,7,0,0 with maxJump 3: the spike at column 2 exceeds
	// the bound and is rejected, and the reference recovers afterwards.
	raw := Sequence{0, 0, 7, 0, 0}
	got := Smooth(raw, 3, nil)
	want := Sequence{0, 0, Missing, 0, 0}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_GenerousBoundKeepsRaw(t *testing.T) {
	raw := Sequence{0, 0, 7, 0, 0}
	got := Smooth(raw, 10, nil)
	if !sequencesEqual(got, raw) {
		t.Errorf("Smooth = %v, want %v", got, raw)
	}
}

func TestSmooth_PreviousFallbackFirstColumnOnly(t *testing.T) {
	// Column 0 falls back to the previous frame; a Missing column elsewhere
	// stays Missing no matter what previous holds.
	raw := Sequence{Missing, 4, Missing, 5}
	previous := Sequence{3, 9, 9, 9}
	got := Smooth(raw, 10, previous)
	want := Sequence{3, 4, Missing, 5}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_FallbackValueBecomesReference(t *testing.T) {
	// The fallback height is an accepted output, so it bounds column 1.
	raw := Sequence{Missing, 40}
	previous := Sequence{3}
	got := Smooth(raw, 5, previous)
	want := Sequence{3, Missing}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_NoFabrication(t *testing.T) {
	raw := Sequence{5, Missing, Missing, 6, Missing}
	got := Smooth(raw, 2, nil)
	for c := range raw {
		if raw[c] == Missing && got[c] != Missing {
			t.Errorf("column %d: fabricated height %d from Missing raw", c, got[c])
		}
	}
}

func TestSmooth_ReferenceCarriesAcrossMissingRuns(t *testing.T) {
	// Columns 1-2 have no edge; column 3 is judged against column 0's
	// accepted height, not against anything invented in between.
	raw := Sequence{10, Missing, Missing, 12, 30}
	got := Smooth(raw, 3, nil)
	want := Sequence{10, Missing, Missing, 12, Missing}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_RejectedColumnDoesNotMoveReference(t *testing.T) {
	raw := Sequence{10, 50, 11}
	got := Smooth(raw, 3, nil)
	want := Sequence{10, Missing, 11}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_NoReferenceAcceptsFirstHit(t *testing.T) {
	// Nothing accepted yet: the first raw height is taken regardless of its
	// magnitude.
	raw := Sequence{Missing, Missing, 90, 91}
	got := Smooth(raw, 2, nil)
	want := Sequence{Missing, Missing, 90, 91}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_ZeroMaxJump(t *testing.T) {
	raw := Sequence{4, 4, 5, 4}
	got := Smooth(raw, 0, nil)
	want := Sequence{4, 4, Missing, 4}
	if !sequencesEqual(got, want) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}

func TestSmooth_Empty(t *testing.T) {
	if got := Smooth(Sequence{}, 5, nil); got.Width() != 0 {
		t.Errorf("Smooth(empty) width = %d, want 0", got.Width())
	}
}

func TestSmooth_JumpBoundHoldsBetweenAdjacentAccepted(t *testing.T) {
	raw := Sequence{0, 2, 5, 9, 14, 2, 3}
	maxJump := 4
	got := Smooth(raw, maxJump, nil)

	prev := Missing
	for c, h := range got {
		if h == Missing {
			prev = Missing
			continue
		}
		if prev != Missing && absInt(h-prev) > maxJump {
			t.Errorf("columns %d..%d: adjacent accepted jump %d exceeds %d", c-1, c, absInt(h-prev), maxJump)
		}
		prev = h
	}
}
