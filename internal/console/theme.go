package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Theme is used for coloring the board. Square colors are backgrounds,
// piece colors are foregrounds.
type Theme struct {
	Name        string
	SquareLight color.Attribute
	SquareDark  color.Attribute
	SquareHigh  color.Attribute // hint and move targets
	SquareLast  color.Attribute // last move
	SquareCheck color.Attribute
	White       color.Attribute
	Black       color.Attribute
	Label       color.Attribute
}

// Themes lists the selectable themes by their short name.
var Themes = map[string]Theme{
	"classic": {
		Name:        "Classic Blue",
		SquareLight: color.BgHiCyan,
		SquareDark:  color.BgBlue,
		SquareHigh:  color.BgHiBlue,
		SquareLast:  color.BgHiYellow,
		SquareCheck: color.BgRed,
		White:       color.FgHiWhite,
		Black:       color.FgBlack,
		Label:       color.FgCyan,
	},
	"dark": {
		Name:        "Modern Dark",
		SquareLight: color.BgHiBlack,
		SquareDark:  color.BgBlack,
		SquareHigh:  color.BgWhite,
		SquareLast:  color.BgYellow,
		SquareCheck: color.BgRed,
		White:       color.FgHiWhite,
		Black:       color.FgHiRed,
		Label:       color.FgHiBlack,
	},
}

// LookupTheme returns the theme with the given short name.
func LookupTheme(name string) (Theme, error) {
	t, ok := Themes[strings.ToLower(name)]
	if !ok {
		return Themes["classic"], fmt.Errorf("unknown theme %q (want classic or dark)", name)
	}
	return t, nil
}
