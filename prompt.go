package main

import (
	"fmt"
	"strings"

	"github.com/muhammadolammi/resumeintake/internal/section"
)

func evaluatorPrompt() string {
	return `
너는 채용 심사관이야.
You receive a job posting and the main sections extracted from one candidate's resume
(학력사항, 경력사항, 자격증, 수상경력).

Your goal is to:
- Judge how well the candidate fits the job posting.
- Output the fit as a number between 0 and 100 on the first line.
- Then explain the reasons for the score.

Base all reasoning only on the provided text.
Do not make up data or assume experience not explicitly mentioned.
Answer in Korean.
	`
}

// greetingReply is the fixed answer to small talk.
const greetingReply = `안녕하세요! 저는 채용 지원 시스템의 AI 어시스턴트입니다.

지원자와 채용공고에 대한 다양한 질문에 답변해드릴 수 있습니다. 예를 들어:

• 지원자들의 학력사항이나 경력사항을 물어보실 수 있어요
• 특정 지원자의 적합성이나 평가 기준을 알아보실 수 있어요
• 면접에서 물어볼 수 있는 질문들을 알아보실 수 있어요
• 특정 기술이나 경험을 가진 지원자를 찾아보실 수 있어요

궁금한 점이 있으시면 언제든 편하게 물어보세요!`

type chatExample struct {
	Question string
	Context  string
	Answer   string
}

var assistantExamples = []chatExample{
	{
		Question: "백엔드 개발 경험이 있는 지원자를 찾아주세요",
		Context:  "지원자 A: Java/Spring 백엔드 개발 3년 경험\n지원자 B: Node.js/Express 백엔드 개발 2년 경험",
		Answer:   "검색된 문서를 확인한 결과, 백엔드 개발 경험이 있는 지원자를 찾았습니다:\n\n- 지원자 A: Java/Spring을 사용한 백엔드 개발 3년 경험\n- 지원자 B: Node.js/Express 백엔드 개발 2년 경험",
	},
	{
		Question: "머신러닝 전문가를 찾아주세요",
		Context:  "지원자 A: 웹 개발 경험\n지원자 B: 모바일 앱 개발 경험",
		Answer:   "검색된 문서를 확인했지만, 머신러닝 관련 경험이 있는 지원자 정보를 찾을 수 없습니다.",
	},
	{
		Question: "안녕하세요",
		Answer:   greetingReply,
	},
}

func assistantPrompt() string {
	var b strings.Builder
	b.WriteString(`
당신은 채용 지원 시스템의 AI 어시스턴트입니다. 지원자와 채용공고에 대한 질문에 답변해주세요.

Rules:
- For greetings or small talk, reply exactly with the greeting shown in the last example.
- For questions about specific skills or experience, recommend first the candidates with matching
  projects, work or certificates, and mention the concrete work from their experience.
- Consider experience, certificates, education and awards together.
- Explain the most suitable candidates first.
- Never mention candidates that are not in the provided information, and never guess.
- When the information is missing, answer "해당 정보를 찾을 수 없습니다".
- Answer in Korean.

Examples:
`)
	for _, ex := range assistantExamples {
		fmt.Fprintf(&b, "\n질문: %s\n\n지원자 정보:\n%s\n\n답변:\n%s\n", ex.Question, ex.Context, ex.Answer)
	}
	return b.String()
}

// sectionBlocks renders the four sections in prompt order.
func sectionBlocks(s section.Sections) string {
	blocks := make([]string, 0, len(section.Kinds))
	for _, k := range section.Kinds {
		blocks = append(blocks, strings.TrimRight(s.Summary(k), "\n"))
	}
	return strings.Join(blocks, "\n")
}

func buildEvaluationMessage(jobPosting string, s section.Sections) string {
	return fmt.Sprintf(
		"다음은 채용공고 내용이야:\n\n---\n%s\n---\n\n그리고 다음은 지원자의 이력서에서 추출한 주요 항목들이야:\n\n%s\n\n이 후보자가 이 채용공고에 얼마나 적합한지를 0~100 사이 점수로 숫자를 출력해줘.\n점수에 대한 이유와 설명도 같이 출력해주세요.",
		strings.TrimSpace(jobPosting),
		sectionBlocks(s),
	)
}

func buildQuestionMessage(question string, matches []CandidateMatch) string {
	var b strings.Builder
	b.WriteString("다음은 지원자의 이력 정보입니다:\n\n<지원자 정보>\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "\n[%d] %s", i+1, m.Candidate.FileName)
		if m.Candidate.FitnessScore != nil {
			fmt.Fprintf(&b, " (적합도 %d)", *m.Candidate.FitnessScore)
		}
		if len(m.MatchedKeywords) > 0 {
			fmt.Fprintf(&b, " 키워드: %s", strings.Join(m.MatchedKeywords, ", "))
		}
		b.WriteString("\n")
		b.WriteString(sectionBlocks(m.Candidate.Sections))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n---\n\n사용자 질문: %s", strings.TrimSpace(question))
	return b.String()
}
