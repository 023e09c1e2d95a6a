package section

import (
	"regexp"
	"strings"
)

// Single-line shapes used when the structured scan finds nothing. They accept
// the same layout Line() renders, with an optional leading "-".
var (
	// "name (issuer, 2023.05.10)"
	datedLineRe = regexp.MustCompile(`^-?\s*(.+?)\s*[\(（]\s*(.+?)\s*[,，]\s*(\d{4}[.-]\d{2}[.-]\d{2})\s*[\)）]$`)

	// "학사 (Seoul University, 2020, 졸업) - 전공: CS"
	educationLineRe = regexp.MustCompile(`^-?\s*(.+?)\s*[\(（]\s*(.+?)\s*[,，]\s*(\d{4})\s*[,，]\s*(.+?)\s*[\)）](?:\s*-\s*(.+))?$`)

	// "Acme Corp - Engineer (2019-현재)"
	dashParenRe = regexp.MustCompile(`^(.+?)\s*[-–]\s*(.+?)\s*[\(（](.+?)[\)）]$`)
)

// eachLine calls fn with every non-blank trimmed line that is not a bare
// date or year token.
func eachLine(text string, fn func(line string)) {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || dateRe.MatchString(line) || yearRe.MatchString(line) {
			continue
		}
		fn(line)
	}
}

// capRecords keeps the fallback within the structural bound of the primary
// scan: at most one record per groupSize input lines.
func capRecords[T any](out []T, text string, groupSize int) []T {
	limit := len(splitLines(text).raw) / groupSize
	if len(out) > limit {
		return out[:limit]
	}
	return out
}

func (p *Parser) fallbackDated(text string, emit func(date, first, second string)) {
	eachLine(text, func(line string) {
		m := datedLineRe.FindStringSubmatch(line)
		if m == nil {
			return
		}
		first, second := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if first == "" || second == "" {
			return
		}
		emit(p.normalizeDate(m[3]), first, second)
	})
}

func (p *Parser) fallbackCertificates(text string) []CertificateRecord {
	out := []CertificateRecord{}
	p.fallbackDated(text, func(date, name, issuer string) {
		out = append(out, CertificateRecord{Name: name, Issuer: issuer, Date: date})
	})
	return capRecords(out, text, datedGroupSize)
}

func (p *Parser) fallbackAwards(text string) []AwardRecord {
	out := []AwardRecord{}
	p.fallbackDated(text, func(date, content, org string) {
		out = append(out, AwardRecord{Content: content, Organization: org, Date: date})
	})
	return capRecords(out, text, datedGroupSize)
}

func fallbackEducation(text string) []EducationRecord {
	out := []EducationRecord{}
	eachLine(text, func(line string) {
		m := educationLineRe.FindStringSubmatch(line)
		if m == nil {
			return
		}
		rec := EducationRecord{
			Level:    strings.TrimSpace(m[1]),
			School:   strings.TrimSpace(m[2]),
			Year:     m[3],
			Status:   strings.TrimSpace(m[4]),
			MajorGPA: strings.TrimSpace(m[5]),
		}
		if rec.Level == "" || rec.School == "" || rec.Status == "" {
			return
		}
		out = append(out, rec)
	})
	return capRecords(out, text, educationGroupSize)
}

func (p *Parser) fallbackExperience(text string) []ExperienceRecord {
	out := []ExperienceRecord{}
	eachLine(text, func(line string) {
		if !isCompanyLine(line) {
			return
		}
		rec := ExperienceRecord{Company: line}
		if m := dashParenRe.FindStringSubmatch(line); m != nil {
			rec.Company = strings.TrimSpace(m[1])
			rec.Position = strings.TrimSpace(m[2])
			rec.Period = p.rewritePresent(strings.TrimSpace(m[3]))
		}
		if rec.Company == "" {
			return
		}
		out = append(out, rec)
	})
	return out
}
