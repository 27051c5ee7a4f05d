package claymark

import "github.com/lucasb-eyer/go-colorful"

// Color is a 24-bit true color with an alpha channel, carried on
// ElementDeclaration backgrounds/borders and on TextNode spans.
//
// The teacher's own Color type (tui.go) tags a ColorMode (terminal-default,
// 16-color, 256-color, true-color) because it draws straight to a terminal
// cell buffer and needs to downsample. This engine never draws a cell
// itself — that's cmd/demo's job — so render commands always carry a full
// RGBA value and let the host downsample for its own output depth.
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque true color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA builds a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex builds an opaque true color from a packed 0xRRGGBB value, matching
// the teacher's Hex(0xFF5500) convention.
func Hex(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// ParseColor parses a color string as used by markup's
// <color is="css-color"/> attribute (spec §6): hex forms ("#ff5500",
// "#f50") and the basic keywords in cssNamedColors ("orange", "grey", ...).
// Functional forms such as "rgb(...)" and the other CSS named colors are not
// recognized; they return an error and the zero Color. The teacher's own color
// system has no string parser (it only builds Color values in code), so
// this is grounded on github.com/lucasb-eyer/go-colorful, already an
// indirect dependency of the teacher via termenv/lipgloss.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err == nil {
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: 255}, nil
	}
	if named, ok := cssNamedColors[s]; ok {
		return named, nil
	}
	return Color{}, err
}

// cssNamedColors covers the basic CSS/ANSI color keywords, extending the
// teacher's own named Color vars (tui.go: Black, Red, Green, ...) with
// their standard CSS hex values rather than the terminal palette indices
// the teacher used them for.
var cssNamedColors = map[string]Color{
	"black":   Hex(0x000000),
	"red":     Hex(0xff0000),
	"green":   Hex(0x008000),
	"yellow":  Hex(0xffff00),
	"blue":    Hex(0x0000ff),
	"magenta": Hex(0xff00ff),
	"cyan":    Hex(0x00ffff),
	"white":   Hex(0xffffff),
	"gray":    Hex(0x808080),
	"grey":    Hex(0x808080),
	"orange":  Hex(0xffa500),
	"purple":  Hex(0x800080),
	"pink":    Hex(0xffc0cb),
	"brown":   Hex(0xa52a2a),
}

// LerpColor blends two colors in perceptual (Lab) space via go-colorful,
// t=0 returns a, t=1 returns b. The teacher's own LerpColor (tui.go) blends
// linearly in sRGB; this engine blends perceptually instead since
// go-colorful makes that the cheaper option, not a linear-RGB lerp.
func LerpColor(a, b Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	blended := ca.BlendLab(cb, t)
	r, g, bl := blended.RGB255()
	return Color{R: r, G: g, B: bl, A: lerpByte(a.A, b.A, t)}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)))
}
