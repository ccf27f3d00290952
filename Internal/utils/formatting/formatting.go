package formatting

import "strings"

// RepeatString repeats a string n times
func RepeatString(s string, count int) string {
	return strings.Repeat(s, count)
}

// Separator returns a line separator of given width
func Separator(width int) string {
	return RepeatString("=", width)
}
