package utils

import "strings"

// ModeTitle builds the process title for the current mode and activity, for
// example "featherremote: remote [Mac]".
func ModeTitle(program, mode, activity string) string {
	var b strings.Builder
	b.WriteString(program)
	b.WriteString(": ")
	b.WriteString(mode)
	if activity != "" {
		b.WriteString(" [")
		b.WriteString(activity)
		b.WriteString("]")
	}
	return b.String()
}
