package section

import (
	"regexp"
	"strings"
)

var (
	// dateRe is the delimiter for certificate and award groups: YYYY.MM.DD or YYYY-MM-DD.
	dateRe = regexp.MustCompile(`^\d{4}[.-]\d{2}[.-]\d{2}$`)

	// yearRe is the delimiter for education groups: a bare graduation year.
	yearRe = regexp.MustCompile(`^\d{4}$`)

	// yearPrefixRe marks work-period lines and excludes them as company names.
	yearPrefixRe = regexp.MustCompile(`^\d{4}`)
)

// lines holds the cursor state for a single scan. It never outlives the call
// that created it.
type lines struct {
	raw []string
	i   int
}

func splitLines(text string) *lines {
	text = strings.TrimSpace(text)
	if text == "" {
		return &lines{}
	}
	return &lines{raw: strings.Split(text, "\n")}
}

func (l *lines) done() bool { return l.i >= len(l.raw) }

// at returns the trimmed line at absolute index j and whether it exists.
func (l *lines) at(j int) (string, bool) {
	if j < 0 || j >= len(l.raw) {
		return "", false
	}
	return strings.TrimSpace(l.raw[j]), true
}

func (l *lines) current() string {
	s, _ := l.at(l.i)
	return s
}

// peek returns the trimmed line n positions ahead of the cursor.
func (l *lines) peek(n int) (string, bool) { return l.at(l.i + n) }

func (l *lines) advance(n int) {
	l.i += n
	if l.i > len(l.raw) {
		l.i = len(l.raw)
	}
}

// remaining counts lines from the cursor to the end, cursor included.
func (l *lines) remaining() int { return len(l.raw) - l.i }

// skipMalformed moves past a delimiter whose group of size n could not be
// completed, honouring the parser's skip policy.
func (p *Parser) skipMalformed(l *lines, n int) {
	if p.skip == SkipGroup {
		l.advance(n)
		return
	}
	l.advance(1)
}

// normalizeDate unifies separators and rewrites present markers.
func (p *Parser) normalizeDate(s string) string {
	return p.rewritePresent(strings.ReplaceAll(s, ".", "-"))
}

// rewritePresent replaces every configured present marker with the sentinel.
func (p *Parser) rewritePresent(s string) string {
	for _, m := range p.presentMarkers {
		if m != "" && strings.Contains(s, m) {
			s = strings.ReplaceAll(s, m, p.sentinel)
		}
	}
	return s
}
