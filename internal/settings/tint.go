package settings

import (
	"fmt"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// tintBase is the dark base colour the opacity applies to.
	tintBase = colorful.Color{R: 15.0 / 255, G: 15.0 / 255, B: 20.0 / 255}
	// Backdrop stands in for whatever sits behind the launcher; a terminal
	// cannot see through itself, so the tint is composited over this colour.
	Backdrop = colorful.Color{R: 75.0 / 255, G: 85.0 / 255, B: 99.0 / 255}
)

// Tint is the background colour derived from an opacity setting.
type Tint struct {
	Opacity int
	Alpha   float64
}

// TintFor computes the tint for opacity (clamped to [0,100]).
func TintFor(opacity int) Tint {
	opacity = ClampOpacity(opacity)
	return Tint{Opacity: opacity, Alpha: float64(opacity) / 100}
}

// CSS renders the tint as an rgba() colour over the fixed base.
func (t Tint) CSS() string {
	return fmt.Sprintf("rgba(15, 15, 20, %s)", strconv.FormatFloat(t.Alpha, 'f', -1, 64))
}

// Over composites the tint over backdrop.
func (t Tint) Over(backdrop colorful.Color) colorful.Color {
	return backdrop.BlendRgb(tintBase, t.Alpha).Clamped()
}

// Hex is the composite over Backdrop as #rrggbb, ready for lipgloss.
func (t Tint) Hex() string {
	return t.Over(Backdrop).Hex()
}

// Label is the numeric readout shown next to the opacity control.
func (t Tint) Label() string {
	return strconv.Itoa(t.Opacity) + "%"
}
