package section

import "strings"

// educationGroupSize is year, level, school and status; the major/GPA line is extra.
const educationGroupSize = 4

// majorMarkers flag the optional fifth line of an education group.
var majorMarkers = []string{"전공:", "학점:", "major:", "gpa:"}

func hasMajorMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range majorMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// ParseEducation reads groups that start with a bare graduation year:
//
//	2020
//	학사
//	Seoul University
//	졸업
//	전공: CS, 학점: 3.8   (optional)
//
// A fifth line without a major/GPA marker is left for the next iteration.
func (p *Parser) ParseEducation(text string) []EducationRecord {
	out := []EducationRecord{}
	l := splitLines(text)
	for !l.done() {
		line := l.current()
		if line == "" || !yearRe.MatchString(line) {
			l.advance(1)
			continue
		}
		if l.remaining() < educationGroupSize {
			p.skipMalformed(l, educationGroupSize)
			continue
		}
		level, _ := l.peek(1)
		school, _ := l.peek(2)
		status, _ := l.peek(3)
		if level == "" || school == "" || status == "" {
			p.skipMalformed(l, educationGroupSize)
			continue
		}

		rec := EducationRecord{Year: line, Level: level, School: school, Status: status}
		consumed := educationGroupSize
		if extra, ok := l.peek(4); ok && hasMajorMarker(extra) {
			rec.MajorGPA = extra
			consumed++
		}
		out = append(out, rec)
		l.advance(consumed)
	}
	if len(out) == 0 && p.fallback {
		return fallbackEducation(text)
	}
	return out
}
