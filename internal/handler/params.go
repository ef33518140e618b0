package handler

import (
	"strconv"
	"strings"
)

// parseID reads a path id the way JavaScript's parseInt does: optional leading
// whitespace and sign, then the leading run of digits. Anything without digits, negative,
// or out of range yields 0, which never matches a record.
func parseID(raw string) uint {
	s := strings.TrimLeft(raw, " \t\n\r")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}
	id, err := strconv.ParseUint(s[:end], 10, 0)
	if err != nil {
		return 0
	}
	return uint(id)
}
