//go:build !darwin

package clipboard

import "errors"

func getClipboardContent() (string, error) {
	return "", errors.New("clipboard access not supported on this platform")
}
