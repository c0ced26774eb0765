package service

import (
	"strconv"
	"strings"
)

const keycap = "\uFE0F\u20E3"

var medals = map[int]string{
	1: "\U0001F947",
	2: "\U0001F948",
	3: "\U0001F949",
}

// Emojize turns a position into an emoji: medals for the podium,
// keycap digits otherwise.
func Emojize(n int) string {
	if medal, ok := medals[n]; ok {
		return medal
	}
	return KeycapNumber(n)
}

// KeycapNumber spells a number with keycap emoji
func KeycapNumber(n int) string {
	if n == 10 {
		return "\U0001F51F"
	}

	var b strings.Builder
	for _, digit := range strconv.Itoa(n) {
		if digit == '-' {
			continue
		}
		b.WriteRune(digit)
		b.WriteString(keycap)
	}
	return b.String()
}
