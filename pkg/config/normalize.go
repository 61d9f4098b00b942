package config

import "strings"

// trimLine removes leading and trailing spaces, tabs, carriage returns and
// line feeds. Interior characters are untouched.
func trimLine(s string) string {
	return strings.Trim(s, " \t\r\n")
}

// stripComment cuts s at the first '#' or ';', if any. Applied to the value
// side of key=value lines only; section headers are never comment-stripped.
func stripComment(s string) string {
	if i := strings.IndexAny(s, "#;"); i >= 0 {
		return s[:i]
	}
	return s
}
