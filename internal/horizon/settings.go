package horizon

import "fmt"

// Algorithm selects which column scan strategy the finder uses.
type Algorithm int

const (
	// BottomUp scans each column from the bottom row upward and keeps the
	// edge nearest the ground. Stable when the foreground (grass, water)
	// carries fewer spurious edges than the sky.
	BottomUp Algorithm = iota + 1

	// TopDown scans row-major from the top and keeps the first edge seen in
	// each column. Terminates earlier on edge-sparse skies and is the
	// default.
	TopDown
)

// String returns the config-file spelling of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case BottomUp:
		return "bottom-up"
	case TopDown:
		return "top-down"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps a config-file spelling to an Algorithm. Both the
// descriptive names and the short variant tags ("v1", "v2") are accepted.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "bottom-up", "v1":
		return BottomUp, nil
	case "top-down", "v2", "":
		return TopDown, nil
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, s)
}

// Settings bundles every tunable of a detection call. The zero value is not
// usable; start from DefaultSettings.
type Settings struct {
	// LowerThreshold and UpperThreshold are the hysteresis thresholds of the
	// edge detector, in 0-255 gradient-magnitude units. Gradients below
	// LowerThreshold are discarded; gradients above UpperThreshold are always
	// edges; gradients in between survive only next to a strong edge.
	LowerThreshold int
	UpperThreshold int

	// ApertureSize is the Sobel kernel size: 3, 5 or 7.
	ApertureSize int

	// HighPrecisionGradient selects the exact L2 gradient magnitude
	// sqrt(gx^2+gy^2) instead of the faster |gx|+|gy| approximation. It only
	// shifts which candidates clear the thresholds, never the output shape.
	HighPrecisionGradient bool

	// Algorithm selects the column scan variant.
	Algorithm Algorithm

	// MaxJump is the largest height change allowed between a column and the
	// nearest preceding accepted column. Larger jumps are rejected to
	// Missing rather than clamped.
	MaxJump int
}

// DefaultSettings mirrors the tuning the detector ships with: thresholds
// 100/200, 3x3 aperture, fast gradient, top-down scan, jump bound 15.
func DefaultSettings() Settings {
	return Settings{
		LowerThreshold: 100,
		UpperThreshold: 200,
		ApertureSize:   3,
		Algorithm:      TopDown,
		MaxJump:        15,
	}
}

// Validate checks every constraint on the settings bundle. All failures wrap
// ErrInvalidConfig.
func (s Settings) Validate() error {
	if s.LowerThreshold < 0 {
		return fmt.Errorf("%w: lower threshold %d is negative", ErrInvalidConfig, s.LowerThreshold)
	}
	if s.LowerThreshold > s.UpperThreshold {
		return fmt.Errorf("%w: lower threshold %d exceeds upper threshold %d",
			ErrInvalidConfig, s.LowerThreshold, s.UpperThreshold)
	}
	switch s.ApertureSize {
	case 3, 5, 7:
	default:
		return fmt.Errorf("%w: aperture size %d not one of 3, 5, 7", ErrInvalidConfig, s.ApertureSize)
	}
	switch s.Algorithm {
	case BottomUp, TopDown:
	default:
		return fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, int(s.Algorithm))
	}
	if s.MaxJump < 0 {
		return fmt.Errorf("%w: max jump %d is negative", ErrInvalidConfig, s.MaxJump)
	}
	return nil
}
