package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"stationctl/internal/status"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

const (
	glyphOK     = "●"
	glyphRemove = "✖"
)

// healthGlyph maps a derived icon/colour pair onto a terminal marker.
func healthGlyph(icon, colour string, colorize bool) string {
	glyph := glyphRemove
	if icon == status.IconOK {
		glyph = glyphOK
	}
	if !colorize {
		return glyph
	}
	if colour == status.ColourGreen {
		return ansiGreen + glyph + ansiReset
	}
	return ansiRed + glyph + ansiReset
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
