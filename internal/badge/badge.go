// Package badge computes and renders the unresolved-note count shown on
// the extension toolbar icon.
package badge

import "strconv"

// Fixed badge colors; the extension applies them verbatim.
const (
	BackgroundColor = "#EF4444"
	TextColor       = "#FFFFFF"
)

// Render produces the badge text for a count. Non-http pages and zero
// counts render empty; errors upstream degrade to an empty badge as well,
// never an error indicator.
func Render(count int, isHTTP bool) string {
	if !isHTTP || count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}
