package routines

import "slices"

// DefaultPalette is the ordered set of routine tag colors.
var DefaultPalette = []string{
	"#E57373", // red
	"#64B5F6", // blue
	"#81C784", // green
	"#FFB74D", // orange
	"#BA68C8", // purple
	"#4DB6AC", // teal
	"#F06292", // pink
	"#A1887F", // brown
}

// AssignColor picks the first palette color not in used. Once every color is
// taken it cycles by the number of used colors.
func AssignColor(palette []string, used []string) string {
	if len(palette) == 0 {
		return ""
	}
	for _, c := range palette {
		if !slices.Contains(used, c) {
			return c
		}
	}
	return palette[len(used)%len(palette)]
}
