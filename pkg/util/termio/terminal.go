package termio

import (
	"os"

	"golang.org/x/term"
)

// DEFAULT_WIDTH is the width assumed when output is not a terminal.
const DEFAULT_WIDTH = uint(120)

// IsTerminal checks whether a given file is attached to a terminal.  Colour is
// only enabled by default when it is.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// Width returns the width of the terminal attached to a given file, or
// DEFAULT_WIDTH when there is none.
func Width(file *os.File) uint {
	fd := int(file.Fd())
	//
	if !term.IsTerminal(fd) {
		return DEFAULT_WIDTH
	}
	//
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DEFAULT_WIDTH
	}
	//
	return uint(width)
}
