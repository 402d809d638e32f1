package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"tmdbpost/internal/tvshow"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 8
	statusIndent     = "  "
)

// lineStyle is the bracketed tag and color of one status line.
type lineStyle struct {
	tag   string
	color string
}

var (
	styleOK    = lineStyle{tag: "OK", color: ansiGreen}
	styleError = lineStyle{tag: "ERROR", color: ansiRed}
)

var statusStyles = map[tvshow.Status]lineStyle{
	tvshow.StatusAdded:     {tag: "ADDED", color: ansiGreen},
	tvshow.StatusUpdated:   {tag: "UPDATED", color: ansiGreen},
	tvshow.StatusUnchanged: {tag: "SAME", color: ansiBlue},
	tvshow.StatusIgnored:   {tag: "SKIP", color: ansiYellow},
	tvshow.StatusError:     styleError,
}

func styleForStatus(status tvshow.Status) lineStyle {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return lineStyle{tag: string(status)}
}

// renderStatusLine formats "  S01E02: [ADDED] message", padding the label so
// tags line up across a batch.
func renderStatusLine(label string, style lineStyle, message string, colorize bool) string {
	text := "[" + style.tag + "]"
	if message != "" {
		text += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", text)
	if colorize && style.color != "" {
		return style.color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
