package horizon

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// gaussianRadius is the denoise blur radius applied before gradient
// computation, roughly matching a 5x5 kernel with sigma 1.4.
const gaussianRadius = 1.4

// BuildEdgeMap runs Canny-style edge detection over a frame and returns a
// binary edge map of identical dimensions.
//
// The pipeline is:
//
//  1. Grayscale conversion (ITU-R BT.601 luminance)
//  2. Gaussian blur to suppress noise
//  3. Sobel gradients with the configured aperture size (3, 5 or 7)
//  4. Gradient magnitude: exact L2 when Settings.HighPrecisionGradient is
//     set, |gx|+|gy| otherwise
//  5. Non-maximum suppression to thin edges to one pixel
//  6. Hysteresis thresholding with Settings.LowerThreshold and
//     Settings.UpperThreshold
//
// Thresholds are compared against raw gradient magnitudes in 0-255 units for
// the 3x3 aperture; the larger apertures produce proportionally larger
// magnitudes, so thresholds tuned for one aperture need retuning for another.
//
// BuildEdgeMap is pure and never fails on frame content: degenerate frames
// (1x1, single row or column) come back as valid, possibly all-false maps,
// and a zero-area frame yields an empty map. The only error is
// ErrInvalidConfig for malformed settings.
func BuildEdgeMap(frame image.Image, s Settings) (*EdgeMap, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	bounds := frame.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return NewEdgeMap(width, height), nil
	}

	gray := effect.Grayscale(frame)
	blurred := blur.Gaussian(gray, gaussianRadius)

	// Normalized luminance plane; blurred is grayscale so any channel works.
	plane := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := blurred.PixOffset(x+blurred.Rect.Min.X, y+blurred.Rect.Min.Y)
			plane[y*width+x] = float64(blurred.Pix[off]) / 255.0
		}
	}

	kx, ky := sobelKernels(s.ApertureSize)
	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	k := s.ApertureSize / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for dy := -k; dy <= k; dy++ {
				py := clamp(y+dy, 0, height-1)
				for dx := -k; dx <= k; dx++ {
					px := clamp(x+dx, 0, width-1)
					v := plane[py*width+px]
					gx += v * kx[dy+k][dx+k]
					gy += v * ky[dy+k][dx+k]
				}
			}
			idx := y*width + x
			if s.HighPrecisionGradient {
				magnitude[idx] = math.Sqrt(gx*gx + gy*gy)
			} else {
				magnitude[idx] = math.Abs(gx) + math.Abs(gy)
			}
			direction[idx] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient
	// direction. Border pixels stay suppressed, matching the classic
	// formulation.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := y*width + x
			angle := direction[idx]
			mag := magnitude[idx]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[idx-1]
				n2 = magnitude[idx+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[idx-width+1]
				n2 = magnitude[idx+width-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[idx-width]
				n2 = magnitude[idx+width]
			default:
				n1 = magnitude[idx-width-1]
				n2 = magnitude[idx+width+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[idx] = mag
			}
		}
	}

	// Double threshold with hysteresis: strong edges always survive, weak
	// edges survive only with a strong 8-neighbor.
	lowThresh := float64(s.LowerThreshold) / 255.0
	highThresh := float64(s.UpperThreshold) / 255.0

	m := NewEdgeMap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y*width+x]
			if val >= highThresh {
				m.Set(x, y, true)
				continue
			}
			if val < lowThresh {
				continue
			}
			for dy := -1; dy <= 1 && !m.At(x, y); dy++ {
				for dx := -1; dx <= 1; dx++ {
					py := clamp(y+dy, 0, height-1)
					px := clamp(x+dx, 0, width-1)
					if suppressed[py*width+px] >= highThresh {
						m.Set(x, y, true)
						break
					}
				}
			}
		}
	}

	return m, nil
}

// sobelKernels returns the X and Y Sobel kernels for an aperture of 3, 5 or
// 7. Each kernel is the outer product of a binomial smoothing vector and a
// derivative vector, the same construction OpenCV uses for its extended
// Sobel sizes.
func sobelKernels(aperture int) (kx, ky [][]float64) {
	var smooth, deriv []float64
	switch aperture {
	case 3:
		smooth = []float64{1, 2, 1}
		deriv = []float64{-1, 0, 1}
	case 5:
		smooth = []float64{1, 4, 6, 4, 1}
		deriv = []float64{-1, -2, 0, 2, 1}
	case 7:
		smooth = []float64{1, 6, 15, 20, 15, 6, 1}
		deriv = []float64{-1, -4, -5, 0, 5, 4, 1}
	default:
		// Settings.Validate rejects everything else before we get here.
		panic("horizon: unsupported aperture size")
	}

	n := len(smooth)
	kx = make([][]float64, n)
	ky = make([][]float64, n)
	for y := 0; y < n; y++ {
		kx[y] = make([]float64, n)
		ky[y] = make([]float64, n)
		for x := 0; x < n; x++ {
			kx[y][x] = smooth[y] * deriv[x]
			ky[y][x] = deriv[y] * smooth[x]
		}
	}
	return kx, ky
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
