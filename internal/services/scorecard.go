package services

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Scorecard is the content of one rendered report image.
type Scorecard struct {
	Title     string
	Subtitle  string
	ScoreLine string
	Bars      []ScorecardBar
}

// ScorecardBar is a labelled percentage in [0,100].
type ScorecardBar struct {
	Label string
	Value float64
}

type ScorecardRenderer interface {
	Render(card Scorecard) ([]byte, error)
}

const (
	scorecardWidth  = 800
	scorecardMargin = 40
	scorecardBarH   = 28
	scorecardBarGap = 22
)

var (
	scorecardBackground = color.RGBA{R: 0xF7, G: 0xF7, B: 0xF4, A: 0xFF}
	scorecardInk        = color.RGBA{R: 0x1F, G: 0x23, B: 0x28, A: 0xFF}
	scorecardMuted      = color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}
	scorecardTrack      = color.RGBA{R: 0xE3, G: 0xE5, B: 0xE8, A: 0xFF}
	scorecardFill       = color.RGBA{R: 0xE8, G: 0x6A, B: 0x1A, A: 0xFF}
)

type scorecardRenderer struct {
	// truetype faces cache glyphs and are not safe for concurrent use.
	mu    sync.Mutex
	once  sync.Once
	err   error
	title font.Face
	body  font.Face
}

// NewScorecardRenderer draws PNG scorecards with the embedded Go fonts.
func NewScorecardRenderer() ScorecardRenderer {
	return &scorecardRenderer{}
}

func (r *scorecardRenderer) loadFonts() error {
	r.once.Do(func() {
		r.title, r.err = parseFace(gobold.TTF, 30)
		if r.err != nil {
			return
		}
		r.body, r.err = parseFace(goregular.TTF, 18)
	})
	return r.err
}

func parseFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

func (r *scorecardRenderer) Render(card Scorecard) ([]byte, error) {
	if err := r.loadFonts(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	header := 150
	height := header + len(card.Bars)*(scorecardBarH+scorecardBarGap) + scorecardMargin
	dc := gg.NewContext(scorecardWidth, height)

	dc.SetColor(scorecardBackground)
	dc.DrawRectangle(0, 0, float64(scorecardWidth), float64(height))
	dc.Fill()

	dc.SetFontFace(r.title)
	dc.SetColor(scorecardInk)
	dc.DrawString(card.Title, scorecardMargin, 60)

	dc.SetFontFace(r.body)
	dc.SetColor(scorecardMuted)
	dc.DrawString(card.Subtitle, scorecardMargin, 92)
	dc.SetColor(scorecardInk)
	dc.DrawString(card.ScoreLine, scorecardMargin, 122)

	labelW := 170.0
	trackX := float64(scorecardMargin) + labelW
	trackW := float64(scorecardWidth) - trackX - float64(scorecardMargin) - 70
	y := float64(header)
	for _, bar := range card.Bars {
		v := bar.Value
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		_, th := dc.MeasureString(bar.Label)
		dc.SetColor(scorecardInk)
		dc.DrawString(bar.Label, scorecardMargin, y+(scorecardBarH+th)/2)

		dc.SetColor(scorecardTrack)
		dc.DrawRoundedRectangle(trackX, y, trackW, scorecardBarH, 6)
		dc.Fill()
		if v > 0 {
			dc.SetColor(scorecardFill)
			dc.DrawRoundedRectangle(trackX, y, trackW*v/100, scorecardBarH, 6)
			dc.Fill()
		}

		dc.SetColor(scorecardInk)
		dc.DrawString(fmt.Sprintf("%.1f%%", bar.Value), trackX+trackW+10, y+(scorecardBarH+th)/2)
		y += scorecardBarH + scorecardBarGap
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
