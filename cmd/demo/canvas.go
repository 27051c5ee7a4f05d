package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"claymark"
)

// cell is one terminal character slot in the compositing grid: a glyph plus
// the style it should paint with. Grounded on the teacher's own cell-grid
// buffer (buffer.go, deleted — see DESIGN.md), rebuilt here on top of
// lipgloss instead of the teacher's own ANSI writer, since cmd/demo paints
// through bubbletea/lipgloss rather than managing the terminal directly.
type cell struct {
	ch   rune
	fg   claymark.Color
	bg   claymark.Color
	hasFg, hasBg bool
	attrs claymark.TextAttr
}

// canvas is a fixed-size compositing grid rendered once per frame from a
// claymark render command list.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.cells = make([][]cell, h)
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
		for x := range c.cells[y] {
			c.cells[y][x].ch = ' '
		}
	}
	return c
}

// paint composites cmds onto the canvas in order (cmds is already z-sorted
// by emitRenderCommands, spec §4.8).
func (c *canvas) paint(cmds []claymark.RenderCommand) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case claymark.CommandRectangle:
			c.fillRect(cmd.Box, cmd.BackgroundColor)
		case claymark.CommandBorder:
			c.drawBorder(cmd.Box, cmd.Border, cmd.BorderColor)
		case claymark.CommandText:
			c.drawText(cmd.Box, cmd)
		case claymark.CommandImage, claymark.CommandScissorStart, claymark.CommandScissorEnd:
			// no image backend or real scissoring in this terminal demo;
			// clipping is approximated by bounds-checked writes below.
		}
	}
}

func (c *canvas) inBounds(x, y int) bool { return x >= 0 && x < c.w && y >= 0 && y < c.h }

func (c *canvas) fillRect(box claymark.BoundingBox, bg claymark.Color) {
	if bg.A == 0 {
		return
	}
	x0, y0 := int(box.X), int(box.Y)
	x1, y1 := x0+int(box.W), y0+int(box.H)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if !c.inBounds(x, y) {
				continue
			}
			c.cells[y][x].bg = bg
			c.cells[y][x].hasBg = true
		}
	}
}

func (c *canvas) drawBorder(box claymark.BoundingBox, b claymark.BorderWidths, color claymark.Color) {
	x0, y0 := int(box.X), int(box.Y)
	x1, y1 := x0+int(box.W)-1, y0+int(box.H)-1
	if b.Top > 0 {
		c.setBorderRune(x0, y0, boxCorner(true, true), color)
		for x := x0 + 1; x < x1; x++ {
			c.setBorderRune(x, y0, '─', color)
		}
		c.setBorderRune(x1, y0, boxCorner(true, false), color)
	}
	if b.Bottom > 0 {
		c.setBorderRune(x0, y1, boxCorner(false, true), color)
		for x := x0 + 1; x < x1; x++ {
			c.setBorderRune(x, y1, '─', color)
		}
		c.setBorderRune(x1, y1, boxCorner(false, false), color)
	}
	if b.Left > 0 {
		for y := y0 + 1; y < y1; y++ {
			c.setBorderRune(x0, y, '│', color)
		}
	}
	if b.Right > 0 {
		for y := y0 + 1; y < y1; y++ {
			c.setBorderRune(x1, y, '│', color)
		}
	}
}

func boxCorner(top, left bool) rune {
	switch {
	case top && left:
		return '┌'
	case top && !left:
		return '┐'
	case !top && left:
		return '└'
	default:
		return '┘'
	}
}

func (c *canvas) setBorderRune(x, y int, r rune, color claymark.Color) {
	if !c.inBounds(x, y) {
		return
	}
	existing := c.cells[y][x]
	if existing.ch != ' ' && existing.ch != 0 {
		if merged, ok := claymark.MergeBorderGlyphs(existing.ch, r); ok {
			r = merged
		}
	}
	c.cells[y][x].ch = r
	c.cells[y][x].fg = color
	c.cells[y][x].hasFg = true
}

func (c *canvas) drawText(box claymark.BoundingBox, cmd claymark.RenderCommand) {
	x0, y0 := int(box.X), int(box.Y)
	if len(cmd.Spans) > 0 {
		x := x0
		for _, span := range cmd.Spans {
			x = c.drawRun(x, y0, x0+int(box.W), span.Text, span.Color, span.Attrs)
		}
		return
	}
	y := y0
	for _, line := range strings.Split(cmd.Text, "\n") {
		if y >= y0+int(box.H) {
			break
		}
		c.drawRun(x0, y, x0+int(box.W), line, cmd.TextColor, cmd.TextAttr)
		y++
	}
}

func (c *canvas) drawRun(x, y, xMax int, s string, color claymark.Color, attrs claymark.TextAttr) int {
	for _, r := range s {
		if x >= xMax {
			break
		}
		if c.inBounds(x, y) {
			c.cells[y][x].ch = r
			c.cells[y][x].fg = color
			c.cells[y][x].hasFg = true
			c.cells[y][x].attrs = attrs
		}
		x++
	}
	return x
}

// render flattens the grid into a single string, grouping consecutive
// same-styled cells into one lipgloss-rendered run per line.
func (c *canvas) render() string {
	var out strings.Builder
	for y := 0; y < c.h; y++ {
		var runStyle lipgloss.Style
		var run strings.Builder
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		var have bool
		var lastFg, lastBg claymark.Color
		var lastHasFg, lastHasBg bool
		var lastAttrs claymark.TextAttr
		for x := 0; x < c.w; x++ {
			cl := c.cells[y][x]
			if !have || cl.fg != lastFg || cl.bg != lastBg || cl.hasFg != lastHasFg || cl.hasBg != lastHasBg || cl.attrs != lastAttrs {
				flush()
				runStyle = styleFor(cl)
				lastFg, lastBg, lastHasFg, lastHasBg, lastAttrs = cl.fg, cl.bg, cl.hasFg, cl.hasBg, cl.attrs
				have = true
			}
			ch := cl.ch
			if ch == 0 {
				ch = ' '
			}
			run.WriteRune(ch)
		}
		flush()
		if y < c.h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func styleFor(cl cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if cl.hasFg {
		s = s.Foreground(lipgloss.Color(hexOf(cl.fg)))
	}
	if cl.hasBg {
		s = s.Background(lipgloss.Color(hexOf(cl.bg)))
	}
	if cl.attrs.Has(claymark.AttrBold) {
		s = s.Bold(true)
	}
	if cl.attrs.Has(claymark.AttrItalic) {
		s = s.Italic(true)
	}
	if cl.attrs.Has(claymark.AttrUnderline) {
		s = s.Underline(true)
	}
	if cl.attrs.Has(claymark.AttrStrikethrough) {
		s = s.Strikethrough(true)
	}
	if cl.attrs.Has(claymark.AttrDim) {
		s = s.Faint(true)
	}
	if cl.attrs.Has(claymark.AttrInverse) {
		s = s.Reverse(true)
	}
	return s
}

func hexOf(c claymark.Color) string {
	const hexDigits = "0123456789abcdef"
	b := [7]byte{'#'}
	b[1] = hexDigits[c.R>>4]
	b[2] = hexDigits[c.R&0xf]
	b[3] = hexDigits[c.G>>4]
	b[4] = hexDigits[c.G&0xf]
	b[5] = hexDigits[c.B>>4]
	b[6] = hexDigits[c.B&0xf]
	return string(b[:])
}
