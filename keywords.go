package main

import (
	"sort"
	"strings"
)

var (
	techKeywords = []string{
		"java", "python", "javascript", "react", "vue", "angular", "node.js", "spring",
		"django", "flask", "mysql", "postgresql", "mongodb", "redis", "docker", "kubernetes",
		"aws", "azure", "gcp", "git", "jenkins", "jira", "agile", "scrum",
	}
	experienceKeywords = []string{
		"경력", "경험", "프로젝트", "개발", "프로그래밍", "코딩", "시니어", "주니어",
		"신입", "중급", "고급", "리드", "매니저", "팀장",
	}
	educationKeywords = []string{
		"학력", "학위", "대학교", "대학원", "석사", "박사", "학사", "전공",
	}
	certificateKeywords = []string{
		"자격증", "인증", "certificate", "license", "aws", "azure", "oracle", "microsoft",
	}
)

var keywordLists = [][]string{techKeywords, experienceKeywords, educationKeywords, certificateKeywords}

// ExtractKeywords returns the known keywords contained in question, list by
// list. A keyword present in two lists is returned twice.
func ExtractKeywords(question string) []string {
	q := strings.ToLower(question)
	keywords := []string{}
	for _, list := range keywordLists {
		for _, kw := range list {
			if strings.Contains(q, kw) {
				keywords = append(keywords, kw)
			}
		}
	}
	return keywords
}

// MatchCandidates scores each candidate by how many keywords its section text
// contains. Candidates without a match are dropped; the rest are ordered by
// score, ties keeping input order.
func MatchCandidates(keywords []string, candidates []CandidateResult) []CandidateMatch {
	matches := []CandidateMatch{}
	for _, c := range candidates {
		text := strings.ToLower(c.Sections.Text())
		m := CandidateMatch{Candidate: c, MatchedKeywords: []string{}}
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				m.MatchScore++
				m.MatchedKeywords = append(m.MatchedKeywords, kw)
			}
		}
		if m.MatchScore > 0 {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches
}
