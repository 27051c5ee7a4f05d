package claymark

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TextAttr is a bitset of text styling attributes, combinable the same way
// the teacher's Attribute bitset (tui.go) combines — bold/dim/italic/
// underline/strikethrough/inverse (spec §9a; spec.md itself only carries
// color on a TextNode, this extends it the way the teacher's domain does).
type TextAttr uint8

const AttrNone TextAttr = 0

const (
	AttrBold TextAttr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrInverse
	AttrStrikethrough
)

func (a TextAttr) Has(attr TextAttr) bool { return a&attr != 0 }

// Span is one styled run within a rich multi-span text leaf (spec §9a).
type Span struct {
	Text  string
	Color Color
	Attrs TextAttr
}

// WrapMode selects how a text leaf wraps when it doesn't fit its
// container's resolved width (spec §4.6).
type WrapMode uint8

const (
	WrapWords WrapMode = iota
	WrapChars
	WrapNone
)

// TextMeasureFunc is the host callback the spec's Text Shaper Bridge
// (§4.5) calls to measure a run of text. Implementations return the size
// in device pixels (terminal cells, here) a single-line, unwrapped render
// of s would occupy. The full TextConfig (not just attrs) is passed
// through, since font_id/font_size are opaque to the solver and only
// mean anything once they reach the callback that actually shapes glyphs.
type TextMeasureFunc func(s string, cfg TextConfig) Dimensions

// RuneWidthSizer is the default TextMeasureFunc, built on
// go-runewidth.StringWidth — grounded on the teacher's own use of
// go-runewidth in buffer.go for cursor/cell-width accounting. Hosts that
// need accurate glyph metrics (a real font shaper) supply their own; the
// bridge itself never depends on which one is plugged in (spec §4.5a).
func RuneWidthSizer(s string, _ TextConfig) Dimensions {
	return Dimensions{W: float32(runewidth.StringWidth(s)), H: 1}
}

// textShaper memoizes TextMeasureFunc results for one frame, since the
// solver's fit/grow passes re-measure the same runs multiple times as
// container widths change (spec §4.5, "per-frame memoization").
type textShaper struct {
	measure TextMeasureFunc
	cache   map[shapeCacheKey]Dimensions
}

// shapeCacheKey memoizes on the text run plus the config knobs that can
// change its measured size — font id/size and attrs/wrap — mirroring the
// spec's "(text, font_id, font_size, letter_spacing)" cache key (§4.5)
// minus letter_spacing, which this engine's TextConfig doesn't model.
type shapeCacheKey struct {
	text string
	cfg  TextConfig
}

func newTextShaper(measure TextMeasureFunc) *textShaper {
	return &textShaper{measure: measure, cache: make(map[shapeCacheKey]Dimensions, 64)}
}

func (s *textShaper) reset() {
	clear(s.cache)
}

func (s *textShaper) measureCached(text string, cfg TextConfig) Dimensions {
	key := shapeCacheKey{text: text, cfg: cfg}
	if d, ok := s.cache[key]; ok {
		return d
	}
	d := s.measure(text, cfg)
	s.cache[key] = d
	return d
}

// wrapLines wraps text to fit within width using cfg.Wrap, returning one
// string per output line. WrapNone returns the text unsplit except on
// explicit newlines, mirroring the teacher's own newline-splitting
// behavior in wrapText (textview.go) before its character-wrap loop runs.
func (s *textShaper) wrapLines(text string, width int, cfg TextConfig) []string {
	if width <= 0 {
		return nil
	}
	switch cfg.Wrap {
	case WrapNone:
		return splitNewlines(text)
	case WrapChars:
		return wrapChars(text, width)
	default:
		return wrapWords(text, width, s.measure, cfg)
	}
}

func splitNewlines(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

// wrapChars character-wraps, expanding tabs to the next 4-column stop —
// ported directly from the teacher's wrapText (textview.go), which never
// had a word-aware mode to fall back from.
func wrapChars(s string, width int) []string {
	const tabWidth = 4
	var out []string
	line := make([]byte, 0, width)
	col := 0

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r == '\n' {
			out = append(out, string(line))
			line = line[:0]
			col = 0
			continue
		}

		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			for j := 0; j < spaces; j++ {
				if col >= width {
					out = append(out, string(line))
					line = line[:0]
					col = 0
				}
				line = append(line, ' ')
				col++
			}
			continue
		}

		if col >= width {
			out = append(out, string(line))
			line = line[:0]
			col = 0
		}

		line = utf8.AppendRune(line, r)
		col++
	}
	out = append(out, string(line))
	return out
}

// wrapWords segments text on word boundaries via uniseg and greedily packs
// words onto lines no wider than width, falling back to wrapChars for any
// single word wider than the whole line (spec §4.6a). This is the one case
// the teacher's own wrapText doesn't handle — it always wraps character by
// character — so it's extended here rather than ported verbatim.
func wrapWords(s string, width int, measure TextMeasureFunc, cfg TextConfig) []string {
	var out []string
	for _, paragraph := range splitNewlines(s) {
		out = append(out, wrapParagraphWords(paragraph, width, measure, cfg)...)
	}
	return out
}

func wrapParagraphWords(paragraph string, width int, measure TextMeasureFunc, cfg TextConfig) []string {
	if paragraph == "" {
		return []string{""}
	}
	var words []string
	state := -1
	remaining := paragraph
	for len(remaining) > 0 {
		word, rest, newState := uniseg.FirstWordInString(remaining, state)
		words = append(words, word)
		remaining = rest
		state = newState
	}

	var lines []string
	var cur string
	curW := 0
	for _, w := range words {
		trimmed := trimTrailingSpace(w)
		wW := int(measure(trimmed, cfg).W)
		if wW > width {
			if cur != "" {
				lines = append(lines, trimTrailingSpace(cur))
				cur, curW = "", 0
			}
			lines = append(lines, wrapChars(trimmed, width)...)
			continue
		}
		candidateW := curW + int(measure(w, cfg).W)
		if cur != "" && candidateW > width {
			lines = append(lines, trimTrailingSpace(cur))
			cur, curW = "", 0
		}
		cur += w
		curW = int(measure(cur, cfg).W)
	}
	if cur != "" {
		lines = append(lines, trimTrailingSpace(cur))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func trimTrailingSpace(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}
