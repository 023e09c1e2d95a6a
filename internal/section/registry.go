package section

import (
	"sort"
	"strings"
)

type parseFunc func(p *Parser, text string) []Record

// parsers is the dispatch table from section kind to scanner.
var parsers = map[Kind]parseFunc{
	Education:    func(p *Parser, text string) []Record { return toRecords(p.ParseEducation(text)) },
	Experience:   func(p *Parser, text string) []Record { return toRecords(p.ParseExperience(text)) },
	Certificates: func(p *Parser, text string) []Record { return toRecords(p.ParseCertificates(text)) },
	Awards:       func(p *Parser, text string) []Record { return toRecords(p.ParseAwards(text)) },
}

func toRecords[T Record](in []T) []Record {
	out := make([]Record, 0, len(in))
	for _, r := range in {
		out = append(out, r)
	}
	return out
}

// ParseField parses text as the given section kind. Unknown kinds yield no records.
func (p *Parser) ParseField(kind Kind, text string) []Record {
	fn, ok := parsers[kind]
	if !ok {
		return []Record{}
	}
	return fn(p, text)
}

// Sections is the structured form of one analyzed resume.
type Sections struct {
	Education    []EducationRecord   `json:"education"`
	Experience   []ExperienceRecord  `json:"experience"`
	Certificates []CertificateRecord `json:"certificates"`
	Awards       []AwardRecord       `json:"awards"`
	// Extra carries analyzer fields that are not one of the four sections, verbatim.
	Extra map[string]string `json:"extra,omitempty"`
}

// ParseDocument parses every known section present in fields, keyed by the
// analyzer's labels. Missing sections come back as empty slices.
func (p *Parser) ParseDocument(fields map[string]string) Sections {
	s := Sections{
		Education:    p.ParseEducation(fields[Education.FieldName()]),
		Experience:   p.ParseExperience(fields[Experience.FieldName()]),
		Certificates: p.ParseCertificates(fields[Certificates.FieldName()]),
		Awards:       p.ParseAwards(fields[Awards.FieldName()]),
	}
	for name, content := range fields {
		if _, known := KindForField(name); known {
			continue
		}
		if s.Extra == nil {
			s.Extra = map[string]string{}
		}
		s.Extra[name] = content
	}
	return s
}

// Records returns the records of one kind through the common interface.
func (s Sections) Records(kind Kind) []Record {
	switch kind {
	case Education:
		return toRecords(s.Education)
	case Experience:
		return toRecords(s.Experience)
	case Certificates:
		return toRecords(s.Certificates)
	case Awards:
		return toRecords(s.Awards)
	}
	return []Record{}
}

// Summary renders one section as a prompt block:
//
//	학력사항 정보:
//	- 학사 (Seoul University, 2020, 졸업)
//
// or "학력사항: 없음" when the section is empty.
func (s Sections) Summary(kind Kind) string {
	recs := s.Records(kind)
	if len(recs) == 0 {
		return kind.FieldName() + ": 없음"
	}
	var b strings.Builder
	b.WriteString(kind.FieldName() + " 정보:\n")
	for _, r := range recs {
		b.WriteString(r.Line())
		b.WriteString("\n")
	}
	return b.String()
}

// Text flattens all records, labels included, and the extra fields into one
// string for keyword search.
func (s Sections) Text() string {
	var parts []string
	for _, k := range Kinds {
		for _, r := range s.Records(k) {
			parts = append(parts, flatten(r))
		}
	}
	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, s.Extra[k])
	}
	return strings.Join(parts, " ")
}
