package section

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleEducation    = "2016\n고등학교\n한일고등학교\n졸업\n2020\n학사\nSeoul University\n졸업\n전공: CS, 학점: 3.8"
	sampleExperience   = "Acme Corp\n(Senior Engineer)\n- built X\n- led Y\n2019-2021\nBeta Inc\n- ran Z\n2021-현재"
	sampleCertificates = "2023.05.10\nAWS SAA\nAmazon\n2021-02-03\n정보처리기사\n한국산업인력공단"
	sampleAwards       = "2022-11-01\nHackathon Winner\nTechCorp"
)

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\t\n"} {
		edu := ParseEducation(in)
		exp := ParseExperience(in)
		certs := ParseCertificates(in)
		awards := ParseAwards(in)

		assert.NotNil(t, edu)
		assert.NotNil(t, exp)
		assert.NotNil(t, certs)
		assert.NotNil(t, awards)
		assert.Empty(t, edu)
		assert.Empty(t, exp)
		assert.Empty(t, certs)
		assert.Empty(t, awards)
	}
}

func TestParse_RecordCountBound(t *testing.T) {
	inputs := []string{
		sampleCertificates,
		"2023.05.10\n2023.05.10\n2023.05.10\n2023.05.10\n2023.05.10",
		"2020\n2020\n2020\n2020\n2020\n2020\n2020",
		sampleEducation + "\n" + sampleEducation,
		"noise\n\n2023.05.10\nx",
		"AWS SAA (Amazon, 2023.05.10)",
		"- 학사 (Seoul University, 2020, 졸업)\n- 석사 (KAIST, 2022, 졸업)",
		"2023.05.10\nonly one",
		"Acme - Dev (2019-현재)\nBeta - Ops (2021-2022)",
	}
	for _, sp := range []SkipPolicy{SkipOne, SkipGroup} {
		for _, fb := range []bool{false, true} {
			p := New(WithSkipPolicy(sp), WithFallback(fb))
			for _, in := range inputs {
				n := len(strings.Split(strings.TrimSpace(in), "\n"))
				assert.LessOrEqual(t, len(p.ParseCertificates(in)), n/3, in)
				assert.LessOrEqual(t, len(p.ParseAwards(in)), n/3, in)
				assert.LessOrEqual(t, len(p.ParseEducation(in)), n/4, in)
				assert.LessOrEqual(t, len(p.ParseExperience(in)), n, in)
			}
		}
	}
}

func TestParse_ConcatenationIsOrdered(t *testing.T) {
	p := New(WithSentinel("2025-08"))
	a := "2023.05.10\nAWS SAA\nAmazon"
	b := "2021-02-03\n정보처리기사\n한국산업인력공단"
	want := append(p.ParseCertificates(a), p.ParseCertificates(b)...)
	assert.Equal(t, want, p.ParseCertificates(a+"\n\n"+b))

	ea := "2016\n고등학교\n한일고등학교\n졸업"
	eb := "2020\n학사\nSeoul University\n졸업\n전공: CS, 학점: 3.8"
	assert.Equal(t, append(p.ParseEducation(ea), p.ParseEducation(eb)...), p.ParseEducation(ea+"\n\n"+eb))

	xa := "Acme Corp\n(Senior Engineer)\n- built X\n2019-2021"
	xb := "Beta Inc\n- ran Z\n2021-현재"
	assert.Equal(t, append(p.ParseExperience(xa), p.ParseExperience(xb)...), p.ParseExperience(xa+"\n\n"+xb))
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := New(WithSentinel("2025-08"))
	wantEdu := p.ParseEducation(sampleEducation)
	wantExp := p.ParseExperience(sampleExperience)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, wantEdu, p.ParseEducation(sampleEducation))
			assert.Equal(t, wantExp, p.ParseExperience(sampleExperience))
		}()
	}
	wg.Wait()
}

func TestParseField_Dispatch(t *testing.T) {
	p := New(WithSentinel("2025-08"))
	samples := map[Kind]string{
		Education:    sampleEducation,
		Experience:   sampleExperience,
		Certificates: sampleCertificates,
		Awards:       sampleAwards,
	}
	for kind, text := range samples {
		recs := p.ParseField(kind, text)
		require.NotEmpty(t, recs, kind.String())
		for _, r := range recs {
			assert.Equal(t, kind, r.Kind())
		}
	}
	assert.Empty(t, p.ParseField(Kind(42), sampleAwards))
}

func TestKindForField(t *testing.T) {
	for _, k := range Kinds {
		got, ok := KindForField(k.FieldName())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := KindForField("기본정보")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestParseSkipPolicy(t *testing.T) {
	assert.Equal(t, SkipGroup, ParseSkipPolicy("group"))
	assert.Equal(t, SkipGroup, ParseSkipPolicy(" GROUP "))
	assert.Equal(t, SkipOne, ParseSkipPolicy("one"))
	assert.Equal(t, SkipOne, ParseSkipPolicy(""))
}

func TestFallback(t *testing.T) {
	p := New(WithFallback(true), WithSentinel("2025-08"))

	t.Run("certificates", func(t *testing.T) {
		got := p.ParseCertificates("자격증 목록\n- AWS SAA (Amazon, 2023.05.10)\n- CKA (CNCF, 2024-01-02)\n정보처리기사\n위 자격 모두 유효\n(만료일 별도)")
		assert.Equal(t, []CertificateRecord{
			{Name: "AWS SAA", Issuer: "Amazon", Date: "2023-05-10"},
			{Name: "CKA", Issuer: "CNCF", Date: "2024-01-02"},
		}, got)
	})

	t.Run("awards with full width punctuation", func(t *testing.T) {
		got := p.ParseAwards("해커톤 대상（TechCorp，2022.11.01）\n교내 활동\n비고")
		assert.Equal(t, []AwardRecord{{Content: "해커톤 대상", Organization: "TechCorp", Date: "2022-11-01"}}, got)
	})

	t.Run("education", func(t *testing.T) {
		got := p.ParseEducation("학력 요약\n학사 (Seoul University, 2020, 졸업) - 전공: CS\nSeoul University (학사)\n2020")
		assert.Equal(t, []EducationRecord{{Year: "2020", Level: "학사", School: "Seoul University", Status: "졸업", MajorGPA: "전공: CS"}}, got)
	})

	t.Run("experience", func(t *testing.T) {
		got := p.ParseExperience("Acme Corp - Engineer (2019-현재)")
		assert.Equal(t, []ExperienceRecord{{Company: "Acme Corp", Position: "Engineer", Period: "2019-2025-08"}}, got)
	})

	t.Run("incomplete lines are dropped", func(t *testing.T) {
		assert.Empty(t, p.ParseAwards("2023.05.10\nonly one"))
		assert.Empty(t, p.ParseCertificates("정보처리기사"))
		assert.Empty(t, p.ParseCertificates("AWS SAA (Amazon)\nCKA (CNCF)\n정보처리기사"))
		assert.Empty(t, p.ParseEducation("Seoul University"))
		assert.Empty(t, p.ParseExperience("2019-2021\n- built X"))
	})

	t.Run("never more records than groups of lines", func(t *testing.T) {
		assert.Empty(t, p.ParseCertificates("AWS SAA (Amazon, 2023.05.10)"))
		got := p.ParseCertificates("AWS SAA (Amazon, 2023.05.10)\nCKA (CNCF, 2024-01-02)\n비고")
		assert.Len(t, got, 1)
	})

	t.Run("primary results win", func(t *testing.T) {
		got := p.ParseCertificates("AWS SAA (Amazon, 2023.05.10)\n2023.05.10\nCKA\nCNCF")
		assert.Equal(t, []CertificateRecord{{Name: "CKA", Issuer: "CNCF", Date: "2023-05-10"}}, got)
	})

	t.Run("disabled by default", func(t *testing.T) {
		assert.Empty(t, New().ParseCertificates("AWS SAA (Amazon, 2023.05.10)\n비고\n비고"))
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Empty(t, p.ParseAwards(""))
	})
}

func TestFallback_RecordInvariants(t *testing.T) {
	p := New(WithFallback(true), WithSentinel("2025-08"))
	datedRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	inputs := []string{
		"2023.05.10\nonly one",
		"정보처리기사",
		"Seoul University",
		"AWS SAA (Amazon)\n(, 2023.05.10)\n해커톤 ( , 2022.11.01)",
		"- AWS SAA (Amazon, 2023.05.10)\n- CKA (CNCF, 2024-01-02)\n-\n2020\n2021.01.01\nx",
		"학사 (Seoul University, 20, 졸업)\n학사 (, 2020, 졸업)\n석사 (KAIST, 2022, 졸업)\n-",
	}
	for _, in := range inputs {
		for _, c := range p.ParseCertificates(in) {
			assert.NotEmpty(t, c.Name, in)
			assert.NotEmpty(t, c.Issuer, in)
			assert.Regexp(t, datedRe, c.Date, in)
		}
		for _, a := range p.ParseAwards(in) {
			assert.NotEmpty(t, a.Content, in)
			assert.NotEmpty(t, a.Organization, in)
			assert.Regexp(t, datedRe, a.Date, in)
		}
		for _, e := range p.ParseEducation(in) {
			assert.Regexp(t, yearRe, e.Year, in)
			assert.NotEmpty(t, e.Level, in)
			assert.NotEmpty(t, e.School, in)
			assert.NotEmpty(t, e.Status, in)
		}
		for _, x := range p.ParseExperience(in) {
			assert.NotEmpty(t, x.Company, in)
			assert.False(t, strings.HasPrefix(x.Company, "-"), in)
		}
	}
}

func TestParseDocument(t *testing.T) {
	p := New(WithSentinel("2025-08"))
	fields := map[string]string{
		"학력사항": sampleEducation,
		"자격증":  sampleCertificates,
		"기본정보": "홍길동 / Go developer",
	}
	s := p.ParseDocument(fields)

	assert.Len(t, s.Education, 2)
	assert.Len(t, s.Certificates, 2)
	assert.NotNil(t, s.Experience)
	assert.Empty(t, s.Experience)
	assert.Empty(t, s.Awards)
	assert.Equal(t, map[string]string{"기본정보": "홍길동 / Go developer"}, s.Extra)

	assert.Equal(t, "수상경력: 없음", s.Summary(Awards))
	assert.Equal(t, "자격증 정보:\n- AWS SAA (Amazon, 2023-05-10)\n- 정보처리기사 (한국산업인력공단, 2021-02-03)\n", s.Summary(Certificates))

	text := s.Text()
	assert.Contains(t, text, "Seoul University")
	assert.Contains(t, text, "AWS SAA")
	assert.Contains(t, text, "Go developer")
	assert.Contains(t, text, "{졸업년도: 2020, 학력: 학사, 학교명: Seoul University, 졸업여부: 졸업, 전공및학점: 전공: CS, 학점: 3.8}")
	assert.Contains(t, text, "{자격증명: AWS SAA, 발급기관: Amazon, 취득일: 2023-05-10}")

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"major_gpa":"전공: CS, 학점: 3.8"`)
	assert.Contains(t, string(raw), `"experience":[]`)
}

func TestSectionsText(t *testing.T) {
	s := Sections{
		Education:    []EducationRecord{{Year: "2016", Level: "고등학교", School: "한일고등학교", Status: "졸업"}},
		Experience:   []ExperienceRecord{{Company: "Acme"}},
		Certificates: []CertificateRecord{{Name: "CKA", Issuer: "CNCF", Date: "2024-01-02"}},
		Awards:       []AwardRecord{{Content: "Hackathon", Organization: "TechCorp", Date: "2022-11-01"}},
		Extra:        map[string]string{"기본정보": "홍길동", "자기소개": "Go"},
	}
	want := "{졸업년도: 2016, 학력: 고등학교, 학교명: 한일고등학교, 졸업여부: 졸업} " +
		"{회사명: Acme, 직위: , 업무내용: , 업무기간: } " +
		"{자격증명: CKA, 발급기관: CNCF, 취득일: 2024-01-02} " +
		"{활동내용: Hackathon, 주관처: TechCorp, 수상일: 2022-11-01} " +
		"홍길동 Go"
	for range 5 {
		assert.Equal(t, want, s.Text())
	}
	assert.Empty(t, Sections{}.Text())
}
