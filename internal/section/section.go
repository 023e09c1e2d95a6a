// Package section converts the free-text resume sections returned by the
// document analyzer into ordered, typed records.
//
// A Parser is immutable once built and holds no per-call state, so a single
// value can be shared by every worker goroutine.
package section

import (
	"strings"
	"time"
)

// Kind identifies one of the four resume sections the parser understands.
type Kind int

const (
	// Education is the 학력사항 section.
	Education Kind = iota
	// Experience is the 경력사항 section.
	Experience
	// Certificates is the 자격증 section.
	Certificates
	// Awards is the 수상경력 section.
	Awards
)

// Kinds lists every section kind in display order.
var Kinds = []Kind{Education, Experience, Certificates, Awards}

// field labels produced by the document analyzer
var fieldNames = map[Kind]string{
	Education:    "학력사항",
	Experience:   "경력사항",
	Certificates: "자격증",
	Awards:       "수상경력",
}

// FieldName returns the analyzer label for the section.
func (k Kind) FieldName() string { return fieldNames[k] }

func (k Kind) String() string {
	switch k {
	case Education:
		return "education"
	case Experience:
		return "experience"
	case Certificates:
		return "certificates"
	case Awards:
		return "awards"
	}
	return "unknown"
}

// KindForField maps an analyzer field label back to its Kind.
func KindForField(name string) (Kind, bool) {
	for k, n := range fieldNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// SkipPolicy controls how far the cursor moves after a delimiter line whose
// group could not be completed.
type SkipPolicy int

const (
	// SkipOne resumes scanning at the line right after the delimiter.
	SkipOne SkipPolicy = iota
	// SkipGroup resumes after the whole attempted group.
	SkipGroup
)

// ParseSkipPolicy accepts "one" or "group"; anything else yields SkipOne.
func ParseSkipPolicy(s string) SkipPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "group") {
		return SkipGroup
	}
	return SkipOne
}

// DefaultPresentMarkers are rewritten to the sentinel in dates and periods.
var DefaultPresentMarkers = []string{"현재", "Present", "present"}

// Option configures a Parser.
type Option func(*Parser)

// WithSentinel sets the literal that replaces a present marker.
func WithSentinel(s string) Option {
	return func(p *Parser) {
		if s != "" {
			p.sentinel = s
		}
	}
}

// WithClock derives the sentinel from t (YYYY-MM) unless WithSentinel is also given.
func WithClock(t time.Time) Option {
	return func(p *Parser) { p.now = t }
}

// WithPresentMarkers replaces the default present markers.
func WithPresentMarkers(markers ...string) Option {
	return func(p *Parser) {
		if len(markers) > 0 {
			p.presentMarkers = append([]string(nil), markers...)
		}
	}
}

// WithSkipPolicy sets the cursor advance used for malformed groups.
func WithSkipPolicy(sp SkipPolicy) Option {
	return func(p *Parser) { p.skip = sp }
}

// WithFallback enables the single-line regex strategy, used only when the
// primary scan yields no records.
func WithFallback(enabled bool) Option {
	return func(p *Parser) { p.fallback = enabled }
}

// Parser holds the normalization settings shared by the four section scanners.
type Parser struct {
	now            time.Time
	sentinel       string
	presentMarkers []string
	skip           SkipPolicy
	fallback       bool
}

// New builds a Parser. Without WithSentinel the sentinel is the month of the
// clock at construction time.
func New(opts ...Option) *Parser {
	p := &Parser{
		now:            time.Now(),
		presentMarkers: DefaultPresentMarkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sentinel == "" {
		p.sentinel = p.now.Format("2006-01")
	}
	return p
}

// Sentinel returns the value substituted for present markers.
func (p *Parser) Sentinel() string { return p.sentinel }

var defaultParser = New()

// Default returns the package-level parser used by the top-level functions.
func Default() *Parser { return defaultParser }

// ParseEducation parses text with the default parser.
func ParseEducation(text string) []EducationRecord { return defaultParser.ParseEducation(text) }

// ParseExperience parses text with the default parser.
func ParseExperience(text string) []ExperienceRecord { return defaultParser.ParseExperience(text) }

// ParseCertificates parses text with the default parser.
func ParseCertificates(text string) []CertificateRecord {
	return defaultParser.ParseCertificates(text)
}

// ParseAwards parses text with the default parser.
func ParseAwards(text string) []AwardRecord { return defaultParser.ParseAwards(text) }
