package main

import (
	"regexp"
	"strconv"
)

// \b is ASCII-only, so a Hangul suffix such as "85점" still ends the number.
var scoreRe = regexp.MustCompile(`\b(\d{1,2}|100)\b`)

// ExtractScore returns the first 0-100 number in an evaluation reply.
func ExtractScore(text string) (int, bool) {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}
