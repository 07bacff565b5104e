//go:build darwin || linux

package interaction

import (
	"golang.org/x/sys/unix"
)

// enableRawMode turns off echo and line buffering. ISIG stays on so Ctrl+C
// still raises SIGINT.
func (kr *KeyboardReader) enableRawMode() error {
	fd := int(kr.in.Fd())

	oldState, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	kr.restore = func() error {
		return unix.IoctlSetTermios(fd, ioctlSetTermios, oldState)
	}

	newState := *oldState
	newState.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	newState.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	newState.Cflag |= unix.CS8
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlSetTermios, &newState)
}
