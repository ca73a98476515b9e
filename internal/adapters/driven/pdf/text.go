package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	pdftext "github.com/ledongthuc/pdf"
)

// glyph is one shown character in user space. Y is the baseline.
type glyph struct {
	X, Y, W, Size float64
	S             string
}

// box is an axis-aligned highlight area on one text line.
type box struct {
	X0, Y0, X1, Y1 float64
}

// Line geometry relative to font size.
const (
	ascentRatio    = 0.85
	descentRatio   = 0.25
	fallbackWidth  = 0.5  // glyph width estimate when the font has no widths
	wordGapRatio   = 0.25 // gap that counts as an implied space
	baselineJitter = 0.5
)

// pageText is the searchable text of a page plus the glyph behind each rune.
// Implied spaces have no glyph (-1).
type pageText struct {
	text   []rune
	owner  []int
	glyphs []glyph
}

// readPages extracts the glyphs of every page, 1-indexed.
func readPages(src []byte) (pages map[int][]glyph, err error) {
	r, err := pdftext.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	pages = make(map[int][]glyph, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		glyphs, perr := pageGlyphs(r.Page(i))
		if perr != nil {
			return nil, fmt.Errorf("page %d: %w", i, perr)
		}
		pages[i] = glyphs
	}
	return pages, nil
}

// pageGlyphs reads a page's content stream. The reader panics on malformed
// streams, which is turned into an error.
func pageGlyphs(p pdftext.Page) (glyphs []glyph, err error) {
	if p.V.IsNull() {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read content: %v", r)
		}
	}()

	for _, t := range p.Content().Text {
		if t.S == "" {
			continue
		}
		glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, Size: t.FontSize, S: t.S})
	}
	return layoutWidths(glyphs), nil
}

// layoutWidths estimates missing glyph widths. Without widths every glyph of a
// run lands on the same X, so the run is laid out from its first glyph.
func layoutWidths(glyphs []glyph) []glyph {
	for i := range glyphs {
		if glyphs[i].W > 0 {
			continue
		}
		size := glyphs[i].Size
		if size <= 0 {
			size = 10
		}
		glyphs[i].W = size * fallbackWidth * float64(utf8.RuneCountInString(glyphs[i].S))
		if i > 0 && sameLine(glyphs[i-1], glyphs[i]) && glyphs[i].X <= glyphs[i-1].X {
			glyphs[i].X = glyphs[i-1].X + glyphs[i-1].W
		}
	}
	return glyphs
}

func sameLine(a, b glyph) bool {
	return math.Abs(a.Y-b.Y) <= baselineJitter*math.Max(a.Size, 1)
}

// buildText joins glyphs into searchable text, inserting spaces at line
// breaks and visible word gaps.
func buildText(glyphs []glyph) pageText {
	pt := pageText{glyphs: glyphs}
	for i, g := range glyphs {
		if i > 0 && needsSpace(glyphs[i-1], g) {
			pt.text = append(pt.text, ' ')
			pt.owner = append(pt.owner, -1)
		}
		for _, r := range g.S {
			pt.text = append(pt.text, r)
			pt.owner = append(pt.owner, i)
		}
	}
	return pt
}

func needsSpace(prev, next glyph) bool {
	if strings.TrimSpace(prev.S) == "" || strings.TrimSpace(next.S) == "" {
		return false
	}
	if !sameLine(prev, next) {
		return true
	}
	return next.X-(prev.X+prev.W) > wordGapRatio*math.Max(next.Size, 1)
}

// find returns the highlight boxes of every case-insensitive occurrence of
// keyword. An occurrence spanning lines yields one box per line.
func (pt pageText) find(keyword string) [][]box {
	needle := []rune(strings.ToLower(strings.TrimSpace(keyword)))
	if len(needle) == 0 {
		return nil
	}

	var matches [][]box
	for i := 0; i+len(needle) <= len(pt.text); i++ {
		if !runesEqualFold(pt.text[i:i+len(needle)], needle) {
			continue
		}
		if boxes := pt.boxes(i, i+len(needle)); len(boxes) > 0 {
			matches = append(matches, boxes)
		}
		i += len(needle) - 1
	}
	return matches
}

func (pt pageText) boxes(from, to int) []box {
	var (
		out  []box
		cur  box
		last = -1
	)
	for k := from; k < to; k++ {
		gi := pt.owner[k]
		if gi < 0 || gi == last {
			continue
		}
		g := pt.glyphs[gi]
		b := box{X0: g.X, Y0: g.Y - descentRatio*g.Size, X1: g.X + g.W, Y1: g.Y + ascentRatio*g.Size}
		if last >= 0 && sameLine(pt.glyphs[last], g) {
			cur.X0 = math.Min(cur.X0, b.X0)
			cur.Y0 = math.Min(cur.Y0, b.Y0)
			cur.X1 = math.Max(cur.X1, b.X1)
			cur.Y1 = math.Max(cur.Y1, b.Y1)
		} else {
			if last >= 0 {
				out = append(out, cur)
			}
			cur = b
		}
		last = gi
	}
	if last >= 0 {
		out = append(out, cur)
	}
	return out
}

func runesEqualFold(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != b[i] {
			return false
		}
	}
	return true
}
