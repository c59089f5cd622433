// Package captcha generates the human-verification challenges: a random
// text drawn from a visually unambiguous alphabet and a distorted PNG
// rendering of it.
package captcha

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/fogleman/gg"

	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
)

// Alphabet is the set of characters challenge texts are drawn from:
// uppercase letters and digits with O, 0, I, 1 and Q excluded, so a
// human never has to guess between look-alike glyphs.
const Alphabet = "ABCDEFGHJKLMNPRSTUVWXYZ23456789"

// Fallback text box estimate used when the font face cannot report
// string metrics.
const (
	fallbackTextWidth  = 150.0
	fallbackTextHeight = 40.0
)

// Generator produces challenge texts and their image renderings.
// It is safe for concurrent use: all state is read-only after construction
// and every Render call builds its own drawing context.
type Generator struct {
	cfg    config.Captcha
	logger *logger.Logger
}

// NewGenerator constructs a Generator with the given rendering settings.
func NewGenerator(cfg config.Captcha, logger *logger.Logger) *Generator {
	logger.Debug().Msg("creating captcha generator")
	return &Generator{
		cfg:    cfg,
		logger: logger,
	}
}

// GenerateText returns a random challenge text of the given length, every
// character drawn uniformly from [Alphabet].
func (g *Generator) GenerateText(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b)
}

// Generate produces a fresh challenge: a random text of the configured
// length and its PNG rendering.
func (g *Generator) Generate() (string, []byte, error) {
	text := g.GenerateText(g.cfg.Length)
	image, err := g.Render(text)
	if err != nil {
		return "", nil, err
	}
	return text, image, nil
}

// Render draws text onto a noisy canvas and returns the PNG bytes.
//
// The canvas is white with a few light-gray random strokes behind the
// text, each character is placed with a small vertical jitter, and
// single-pixel gray dots are scattered over the result. Font loading and
// text measurement degrade gracefully: a missing TTF falls back to the
// drawing library's built-in face, a failed measurement falls back to a
// fixed text box estimate. The only error path is PNG encoding.
func (g *Generator) Render(text string) ([]byte, error) {
	width, height := g.cfg.Width, g.cfg.Height

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// background strokes
	dc.SetRGB255(211, 211, 211)
	dc.SetLineWidth(2)
	for range g.cfg.NoiseLines {
		dc.DrawLine(
			float64(rand.IntN(width)), float64(rand.IntN(height)),
			float64(rand.IntN(width)), float64(rand.IntN(height)),
		)
		dc.Stroke()
	}

	g.loadFontFace(dc)

	textWidth, textHeight := dc.MeasureString(text)
	if textWidth <= 0 || textHeight <= 0 {
		textWidth, textHeight = fallbackTextWidth, fallbackTextHeight
	}

	x := (float64(width) - textWidth) / 2
	baseline := (float64(height) + textHeight) / 2
	step := textWidth / float64(len(text))

	dc.SetRGB(0, 0, 0)
	for i, r := range []rune(text) {
		jitter := float64(rand.IntN(11) - 5)
		dc.DrawString(string(r), x+float64(i)*step, baseline+jitter)
	}

	// noise dots
	dc.SetRGB255(128, 128, 128)
	for range g.cfg.NoiseDots {
		dc.SetPixel(rand.IntN(width), rand.IntN(height))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("error encoding captcha image: %w", err)
	}

	return buf.Bytes(), nil
}

// loadFontFace tries the configured TTF paths in order and keeps the first
// one that loads. When none loads the context keeps its built-in default
// face; that is a silent fallback, not an error.
func (g *Generator) loadFontFace(dc *gg.Context) {
	for _, path := range g.cfg.FontPaths {
		if err := dc.LoadFontFace(path, g.cfg.FontSize); err == nil {
			return
		}
	}
	g.logger.Debug().Strs("font_paths", g.cfg.FontPaths).Msg("no configured font loaded, using built-in face")
}

// Normalize prepares a user's answer for comparison against the expected
// challenge text: surrounding whitespace is trimmed and the result is
// uppercase-folded, so answers match regardless of case and padding.
func Normalize(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
