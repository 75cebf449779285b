// Package clipboard reads the system clipboard, so lyrics copied from
// another application can be turned into a deck in one action.
package clipboard

// GetText returns the current clipboard text.
func GetText() (string, error) {
	return getClipboardContent()
}
