package models

// ColorMode is the terminal palette preference.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

// Toggle returns the opposite mode. Anything other than light toggles to light.
func (m ColorMode) Toggle() ColorMode {
	if m == ColorModeLight {
		return ColorModeDark
	}
	return ColorModeLight
}

// ParseColorMode maps a stored value to a mode, defaulting to light.
func ParseColorMode(s string) ColorMode {
	if ColorMode(s) == ColorModeDark {
		return ColorModeDark
	}
	return ColorModeLight
}
