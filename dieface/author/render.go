package author

import (
	"strings"

	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/dieface/dieface/util"
)

// Render formats the side table with colour codes, highlighting the selected
// side. Use text.ANSI to show it on a terminal.
func Render(e *Editor) string {
	sides := e.Die().Sides

	lines := make([]string, 0, len(sides)+1)
	lines = append(lines, text.Colourf("<white>Sides: %d</white>", len(sides)))
	for i, s := range sides {
		format := "<grey>%2d.</grey> <aqua>%s</aqua> <white>%d</white>"
		if i == e.Selected() {
			format = "<grey>%2d.</grey> <yellow>%s</yellow> <white>%d</white>"
		}
		lines = append(lines, text.Colourf(format, i, util.FormatVec3(s.Normal), s.Value))
	}
	return strings.Join(lines, "\n")
}
