package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

// OverlayOptions controls how the horizon polyline is drawn.
type OverlayOptions struct {
	// ColorHex is the line color as "#RRGGBB". Empty selects the default
	// magenta, which stays visible over both sky and ground in most scenes.
	ColorHex string

	// Thickness is the line thickness in pixels; values below 1 become 2.
	Thickness int
}

// OverlayResult contains a frame with the horizon drawn over it, encoded as
// base64 PNG for transport over the tool server.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

const defaultOverlayColor = "#FF4FC3"

// RenderOverlay draws the sequence over a clone of the frame and returns the
// composite. The source frame is never modified. Missing columns are left
// untouched; between adjacent accepted columns the line is drawn solid, so
// steep (but accepted) transitions stay connected.
func RenderOverlay(frame image.Image, seq horizon.Sequence, opts OverlayOptions) (*image.NRGBA, error) {
	if opts.ColorHex == "" {
		opts.ColorHex = defaultOverlayColor
	}
	lineColor, err := colorful.Hex(opts.ColorHex)
	if err != nil {
		return nil, fmt.Errorf("overlay color %q: %w", opts.ColorHex, err)
	}
	thickness := opts.Thickness
	if thickness < 1 {
		thickness = 2
	}

	out := imaging.Clone(frame)
	height := out.Bounds().Dy()
	width := out.Bounds().Dx()

	prev := horizon.Missing
	for c := 0; c < width && c < seq.Width(); c++ {
		h := seq[c]
		if h == horizon.Missing {
			prev = horizon.Missing
			continue
		}
		y := height - 1 - h

		// Connect to the previous accepted column by filling the vertical
		// span between the two rows.
		top, bottom := y, y
		if prev != horizon.Missing {
			prevY := height - 1 - prev
			if prevY < top {
				top = prevY
			}
			if prevY > bottom {
				bottom = prevY
			}
		}
		for yy := top; yy <= bottom; yy++ {
			for d := 0; d < thickness; d++ {
				out.Set(c, yy+d-thickness/2, lineColor)
			}
		}
		prev = h
	}
	return out, nil
}

// OverlayPNG renders the overlay and packages it as a base64 PNG result.
func OverlayPNG(frame image.Image, seq horizon.Sequence, opts OverlayOptions) (*OverlayResult, error) {
	out, err := RenderOverlay(frame, seq, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}
	return &OverlayResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveOverlay renders the overlay and writes it to path; the format follows
// the file extension as understood by the imaging package.
func SaveOverlay(path string, frame image.Image, seq horizon.Sequence, opts OverlayOptions) error {
	out, err := RenderOverlay(frame, seq, opts)
	if err != nil {
		return err
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("save overlay: %w", err)
	}
	return nil
}
