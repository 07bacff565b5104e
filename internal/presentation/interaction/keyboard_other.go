//go:build !darwin && !linux

package interaction

import "errors"

func (kr *KeyboardReader) enableRawMode() error {
	return errors.New("raw keyboard input is not supported on this platform")
}
