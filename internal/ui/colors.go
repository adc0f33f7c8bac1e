// Package ui styles terminal output for the legisinfo CLI.
//
// Styles render as plain text when NO_COLOR is set in the environment.
package ui

import "os"

// Style is an ANSI SGR prefix; Paint closes it with a reset.
type Style string

const reset = "\033[0m"

const (
	Plain       Style = ""
	Strong      Style = "\033[1m"
	Muted       Style = "\033[2m"
	Heading     Style = "\033[1m\033[97m"
	Command     Style = "\033[36m"
	Placeholder Style = "\033[33m"
	Good        Style = "\033[32m"
	Bad         Style = "\033[31m"
	Note        Style = "\033[2m\033[33m"
)

var enabled = os.Getenv("NO_COLOR") == ""

// SetEnabled switches styling on or off for the whole process.
func SetEnabled(on bool) { enabled = on }

// Enabled reports whether Paint emits escape codes.
func Enabled() bool { return enabled }

func (s Style) Paint(text string) string {
	if !enabled || s == Plain {
		return text
	}
	return string(s) + text + reset
}

func Bold(s string) string    { return Strong.Paint(s) }
func Success(s string) string { return Good.Paint(s) }
func Info(s string) string    { return Note.Paint(s) }
func Error(s string) string   { return Bad.Paint(s) }

// Label styles a field name in key/value listings.
func Label(s string) string { return Command.Paint(s) }
