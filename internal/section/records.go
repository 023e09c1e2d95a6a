package section

import (
	"fmt"
	"strings"
)

// Record is the common view over the four record types.
type Record interface {
	Kind() Kind
	// Fields returns the record keyed by the analyzer's display labels.
	Fields() map[string]string
	// Line renders the record as a single prompt/display line.
	Line() string
}

// fieldOrder is the display order of each kind's Fields() keys.
var fieldOrder = map[Kind][]string{
	Education:    {"졸업년도", "학력", "학교명", "졸업여부", "전공및학점"},
	Experience:   {"회사명", "직위", "업무내용", "업무기간"},
	Certificates: {"자격증명", "발급기관", "취득일"},
	Awards:       {"활동내용", "주관처", "수상일"},
}

// flatten renders r as "{label: value, ...}" in fieldOrder, skipping labels
// the record does not carry.
func flatten(r Record) string {
	fields := r.Fields()
	pairs := make([]string, 0, len(fields))
	for _, k := range fieldOrder[r.Kind()] {
		if v, ok := fields[k]; ok {
			pairs = append(pairs, k+": "+v)
		}
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

type EducationRecord struct {
	Year     string `json:"graduation_year"`
	Level    string `json:"level"`
	School   string `json:"school"`
	Status   string `json:"status"`
	MajorGPA string `json:"major_gpa,omitempty"`
}

func (EducationRecord) Kind() Kind { return Education }

func (r EducationRecord) Fields() map[string]string {
	m := map[string]string{
		"졸업년도": r.Year,
		"학력":   r.Level,
		"학교명":  r.School,
		"졸업여부": r.Status,
	}
	if r.MajorGPA != "" {
		m["전공및학점"] = r.MajorGPA
	}
	return m
}

func (r EducationRecord) Line() string {
	s := fmt.Sprintf("- %s (%s, %s, %s)", r.Level, r.School, r.Year, r.Status)
	if r.MajorGPA != "" {
		s += " - " + r.MajorGPA
	}
	return s
}

// ExperienceRecord fields other than Company are empty strings when absent.
type ExperienceRecord struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
	Period      string `json:"period"`
}

func (ExperienceRecord) Kind() Kind { return Experience }

func (r ExperienceRecord) Fields() map[string]string {
	return map[string]string{
		"회사명":  r.Company,
		"직위":   r.Position,
		"업무내용": r.Description,
		"업무기간": r.Period,
	}
}

func (r ExperienceRecord) Line() string {
	s := "- " + r.Company
	if r.Position != "" {
		s += " (" + r.Position + ")"
	}
	if r.Period != "" {
		s += " - " + r.Period
	}
	if r.Description != "" {
		s += " - " + r.Description
	}
	return s
}

type CertificateRecord struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

func (CertificateRecord) Kind() Kind { return Certificates }

func (r CertificateRecord) Fields() map[string]string {
	return map[string]string{
		"자격증명": r.Name,
		"발급기관": r.Issuer,
		"취득일":  r.Date,
	}
}

func (r CertificateRecord) Line() string {
	return fmt.Sprintf("- %s (%s, %s)", r.Name, r.Issuer, r.Date)
}

type AwardRecord struct {
	Content      string `json:"content"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
}

func (AwardRecord) Kind() Kind { return Awards }

func (r AwardRecord) Fields() map[string]string {
	return map[string]string{
		"활동내용": r.Content,
		"주관처":  r.Organization,
		"수상일":  r.Date,
	}
}

func (r AwardRecord) Line() string {
	return fmt.Sprintf("- %s (%s, %s)", r.Content, r.Organization, r.Date)
}
