package horizon

import (
	"errors"
	"image"
	"testing"
)

func TestFinder_LengthInvariant(t *testing.T) {
	f, err := NewFinder(DefaultSettings())
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}

	for _, width := range []int{1, 2, 17, 64} {
		seq, _, err := f.Detect(createFlatImage(width, 12), nil)
		if err != nil {
			t.Fatalf("Detect failed: %v", err)
		}
		if seq.Width() != width {
			t.Errorf("width %d: sequence length %d", width, seq.Width())
		}
	}
}

func TestFinder_ZeroWidthFrame(t *testing.T) {
	f, err := NewFinder(DefaultSettings())
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}
	seq, diag, err := f.Detect(image.NewRGBA(image.Rect(0, 0, 0, 10)), nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if seq.Width() != 0 || diag.Accepted != 0 {
		t.Errorf("got sequence %v, diagnostics %+v; want empty", seq, diag)
	}
}

func TestFinder_DetectsHighContrastBoundary(t *testing.T) {
	const (
		width   = 48
		height  = 36
		skyRows = 14
	)
	f, err := NewFinder(DefaultSettings())
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}

	seq, diag, err := f.Detect(createHorizonTestImage(width, height, skyRows), nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if diag.Accepted < width/2 {
		t.Fatalf("only %d of %d columns accepted on a clean boundary", diag.Accepted, width)
	}

	// The boundary sits at row 14, i.e. height 36-1-14 = 21 from the bottom.
	// Blur and non-maximum suppression may shift the detected row slightly.
	wantHeight := height - 1 - skyRows
	for c, h := range seq {
		if h == Missing {
			continue
		}
		if h < wantHeight-3 || h > wantHeight+3 {
			t.Errorf("column %d: height %d, want near %d", c, h, wantHeight)
		}
	}
}

func TestFinder_Deterministic(t *testing.T) {
	img := createHorizonTestImage(40, 30, 11)
	f, err := NewFinder(DefaultSettings())
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}

	first, firstDiag, err := f.Detect(img, nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	second, secondDiag, err := f.Detect(img, nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if !sequencesEqual(first, second) {
		t.Errorf("repeated Detect differs: %v vs %v", first, second)
	}
	if firstDiag != secondDiag {
		t.Errorf("repeated diagnostics differ: %+v vs %+v", firstDiag, secondDiag)
	}
}

func TestFinder_DetectEdgesDiagnostics(t *testing.T) {
	// Scenario: heights 0,0,7,0,0 with maxJump 3 rejects the middle column.
	m := mapFromRows(t, []string{
		"     ",
		"     ",
		"  #  ",
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"     ",
		"## ##",
	})

	s := DefaultSettings()
	s.MaxJump = 3
	f, err := NewFinder(s)
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}

	seq, diag := f.DetectEdges(m, nil)
	want := Sequence{0, 0, Missing, 0, 0}
	if !sequencesEqual(seq, want) {
		t.Errorf("sequence = %v, want %v", seq, want)
	}

	wantDiag := Diagnostics{Width: 5, Height: 10, EdgePixels: 5, Accepted: 4, MissingColumns: 1, RejectedJumps: 1}
	if diag != wantDiag {
		t.Errorf("diagnostics = %+v, want %+v", diag, wantDiag)
	}
}

func TestFinder_VariantSelection(t *testing.T) {
	m := mapFromRows(t, []string{
		"#",
		" ",
		"#",
	})

	s := DefaultSettings()
	s.Algorithm = TopDown
	f, err := NewFinder(s)
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}
	if seq, _ := f.DetectEdges(m, nil); seq[0] != 2 {
		t.Errorf("top-down height = %d, want 2", seq[0])
	}

	s.Algorithm = BottomUp
	f, err = NewFinder(s)
	if err != nil {
		t.Fatalf("NewFinder failed: %v", err)
	}
	if seq, _ := f.DetectEdges(m, nil); seq[0] != 0 {
		t.Errorf("bottom-up height = %d, want 0", seq[0])
	}
}

func TestNewFinder_InvalidConfig(t *testing.T) {
	s := DefaultSettings()
	s.ApertureSize = 4
	if _, err := NewFinder(s); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewFinder error = %v, want ErrInvalidConfig", err)
	}
}

func TestDetect_OneShot(t *testing.T) {
	seq, _, err := Detect(createFlatImage(9, 9), DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if seq.Width() != 9 || seq.MissingCount() != 9 {
		t.Errorf("flat frame: sequence = %v, want all Missing", seq)
	}
}
