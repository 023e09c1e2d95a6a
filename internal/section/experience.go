package section

import "strings"

func isCompanyLine(line string) bool {
	return line != "" && !strings.HasPrefix(line, "-") && !yearPrefixRe.MatchString(line)
}

func isPositionLine(line string) bool {
	return strings.Contains(line, "(") && strings.Contains(line, ")")
}

// ParseExperience reads variable-length groups:
//
//	Acme Corp
//	(Senior Engineer)      optional, must contain a parenthesis pair
//	- built X              zero or more bullets
//	- led Y
//	2019-2021              optional, must start with a year
//
// A company line needs at least one line after it; a trailing company line
// is dropped.
func (p *Parser) ParseExperience(text string) []ExperienceRecord {
	out := []ExperienceRecord{}
	l := splitLines(text)
	for !l.done() {
		line := l.current()
		if !isCompanyLine(line) {
			l.advance(1)
			continue
		}
		next, ok := l.peek(1)
		if !ok {
			l.advance(1)
			continue
		}

		rec := ExperienceRecord{Company: line}
		l.advance(1)
		if isPositionLine(next) {
			rec.Position = next
			l.advance(1)
		}

		var bullets []string
		for !l.done() && strings.HasPrefix(l.current(), "-") {
			bullets = append(bullets, l.current())
			l.advance(1)
		}
		rec.Description = strings.Join(bullets, " ")

		if !l.done() && yearPrefixRe.MatchString(l.current()) {
			rec.Period = p.rewritePresent(l.current())
			l.advance(1)
		}
		out = append(out, rec)
	}
	if len(out) == 0 && p.fallback {
		return p.fallbackExperience(text)
	}
	return out
}
