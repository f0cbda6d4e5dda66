// Package tty reports whether a file descriptor refers to a terminal.
package tty
