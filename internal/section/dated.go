package section

// datedGroupSize is date line + two value lines.
const datedGroupSize = 3

// scanDated walks certificate/award text, calling emit for every complete
// date/value/value triplet in order of appearance.
func (p *Parser) scanDated(text string, emit func(date, first, second string)) {
	l := splitLines(text)
	for !l.done() {
		line := l.current()
		if line == "" || !dateRe.MatchString(line) {
			l.advance(1)
			continue
		}
		first, ok1 := l.peek(1)
		second, ok2 := l.peek(2)
		if !ok1 || !ok2 || first == "" || second == "" {
			p.skipMalformed(l, datedGroupSize)
			continue
		}
		emit(p.normalizeDate(line), first, second)
		l.advance(datedGroupSize)
	}
}

// ParseCertificates reads date / certificate name / issuing authority triplets.
func (p *Parser) ParseCertificates(text string) []CertificateRecord {
	out := []CertificateRecord{}
	p.scanDated(text, func(date, name, issuer string) {
		out = append(out, CertificateRecord{Name: name, Issuer: issuer, Date: date})
	})
	if len(out) == 0 && p.fallback {
		return p.fallbackCertificates(text)
	}
	return out
}

// ParseAwards reads date / activity / organizing body triplets.
func (p *Parser) ParseAwards(text string) []AwardRecord {
	out := []AwardRecord{}
	p.scanDated(text, func(date, content, org string) {
		out = append(out, AwardRecord{Content: content, Organization: org, Date: date})
	})
	if len(out) == 0 && p.fallback {
		return p.fallbackAwards(text)
	}
	return out
}
