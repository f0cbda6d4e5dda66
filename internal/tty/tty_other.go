//go:build !linux

package tty

// IsTerminal always reports false outside linux; output is left uncoloured.
func IsTerminal(fd uintptr) bool {
	return false
}
