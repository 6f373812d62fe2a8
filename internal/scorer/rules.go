package scorer

import (
	"strings"

	"ats-score-go/internal/types"
)

// diagChannel 诊断输出通道。问题、建议和报告末尾的综合建议
// 共用同一张规则表，避免两套阈值各自演化产生漂移
type diagChannel int

const (
	chanIssue diagChannel = iota
	chanSuggestion
	chanRecommendation
)

// ruleInput 规则求值的输入快照
type ruleInput struct {
	Overall    float64
	Keyword    float64
	Semantic   float64
	Skills     float64
	Experience float64
	Education  float64
	Format     float64

	Facts         *types.ResumeFacts
	MissingSkills []string
}

// diagnosticRule 一条诊断规则：条件命中时向指定通道输出固定文案
type diagnosticRule struct {
	channel diagChannel
	emit    func(in ruleInput) []string
}

// static 构造条件命中时输出固定文案的规则体
func static(cond func(in ruleInput) bool, lines ...string) func(in ruleInput) []string {
	return func(in ruleInput) []string {
		if cond(in) {
			return lines
		}
		return nil
	}
}

// diagnosticRules 全量规则表，表内顺序即输出顺序
// 同类分项的阈值梯度互斥（如关键词<40与[40,60)各出一条），其余规则彼此独立
var diagnosticRules = []diagnosticRule{
	// ---- 问题 ----
	{chanIssue, static(func(in ruleInput) bool { return in.Keyword < 40 },
		"❌ Very low keyword match with job description")},
	{chanIssue, static(func(in ruleInput) bool { return in.Keyword >= 40 && in.Keyword < 60 },
		"⚠️ Moderate keyword match - consider adding more relevant keywords")},
	{chanIssue, static(func(in ruleInput) bool { return in.Skills < 40 },
		"❌ Skills section needs significant improvement")},
	{chanIssue, static(func(in ruleInput) bool { return in.Skills >= 40 && in.Skills < 60 },
		"⚠️ Some key skills might be missing")},
	{chanIssue, static(func(in ruleInput) bool { return in.Experience < 50 },
		"❌ Experience section lacks quantifiable achievements")},
	{chanIssue, static(func(in ruleInput) bool { return in.Education < 50 },
		"⚠️ Education section could be more detailed")},
	{chanIssue, static(func(in ruleInput) bool { return in.Format < 60 },
		"❌ Resume format needs improvement for ATS parsing")},
	{chanIssue, static(func(in ruleInput) bool { return len(in.Facts.Emails) == 0 },
		"❌ Email address not found")},
	{chanIssue, static(func(in ruleInput) bool { return len(in.Facts.Phones) == 0 },
		"❌ Phone number not found")},
	{chanIssue, static(func(in ruleInput) bool { return resumeLength(in.Facts.RawText) < 300 },
		"❌ Resume is too short - add more relevant content")},
	{chanIssue, static(func(in ruleInput) bool { return resumeLength(in.Facts.RawText) > 7000 },
		"⚠️ Resume might be too long - consider being more concise")},

	// ---- 建议 ----
	{chanSuggestion, static(func(in ruleInput) bool { return in.Keyword < 70 },
		"💡 Incorporate more keywords from the job description naturally throughout your resume")},
	{chanSuggestion, static(func(in ruleInput) bool { return in.Skills < 70 },
		"💡 Add a dedicated skills section with relevant technical and soft skills",
		"💡 Match your skills with those mentioned in the job requirements")},
	{chanSuggestion, static(func(in ruleInput) bool { return in.Experience < 70 },
		"💡 Add quantifiable achievements (percentages, dollar amounts, team sizes)",
		"💡 Use action verbs to start your experience bullet points",
		"💡 Include specific dates for each position")},
	{chanSuggestion, static(func(in ruleInput) bool { return in.Education < 70 },
		"💡 Include graduation year and GPA (if above 3.5)",
		"💡 Add relevant coursework, projects, or academic achievements")},
	{chanSuggestion, static(func(in ruleInput) bool { return in.Format < 70 },
		"💡 Ensure clear section headers (Experience, Education, Skills)",
		"💡 Include all contact information at the top",
		"💡 Use consistent formatting throughout")},
	{chanSuggestion, static(func(in ruleInput) bool { return len(in.Facts.URLs) == 0 },
		"💡 Consider adding your LinkedIn profile or portfolio URL")},
	{chanSuggestion, func(in ruleInput) []string {
		if len(in.MissingSkills) == 0 {
			return nil
		}
		top := in.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		return []string{"💡 Consider adding these skills if you have them: " + strings.Join(top, ", ")}
	}},

	// ---- 报告综合建议 ----
	{chanRecommendation, static(func(in ruleInput) bool { return in.Overall >= 80 },
		"Your resume is well-optimized for ATS. Make sure to tailor it for each specific job application.")},
	{chanRecommendation, static(func(in ruleInput) bool { return in.Overall >= 60 && in.Overall < 80 },
		"Your resume shows good potential. Focus on the suggested improvements to increase your chances.")},
	{chanRecommendation, static(func(in ruleInput) bool { return in.Overall < 60 },
		"Your resume needs significant improvements to pass ATS screening effectively.")},
	{chanRecommendation, static(func(in ruleInput) bool { return in.Keyword < 60 },
		"Focus on incorporating more relevant keywords from the job description.")},
	{chanRecommendation, static(func(in ruleInput) bool { return in.Skills < 60 },
		"Enhance your skills section with more relevant technical and soft skills.")},
	{chanRecommendation, static(func(in ruleInput) bool { return in.Experience < 60 },
		"Improve your experience section with quantifiable achievements and action verbs.")},
	{chanRecommendation, static(func(in ruleInput) bool { return in.Format < 70 },
		"Ensure your resume follows ATS-friendly formatting guidelines.")},
	{chanRecommendation, static(func(in ruleInput) bool { return true },
		"Remember to save your resume in a compatible format (PDF or DOCX) for ATS systems.",
		"Avoid using images, charts, or complex formatting that ATS might not parse correctly.")},
}

// runRules 按表内顺序求值指定通道的规则，收集命中文案
func runRules(channel diagChannel, in ruleInput) []string {
	var lines []string
	for _, rule := range diagnosticRules {
		if rule.channel != channel {
			continue
		}
		lines = append(lines, rule.emit(in)...)
	}
	return lines
}

// reportInput 从已构造的报告还原规则输入
func reportInput(report *types.ScoreReport, facts *types.ResumeFacts) ruleInput {
	if facts == nil {
		facts = &types.ResumeFacts{}
	}
	return ruleInput{
		Overall:       report.OverallScore,
		Keyword:       report.KeywordMatchScore,
		Semantic:      report.SemanticSimilarity,
		Skills:        report.SkillsScore,
		Experience:    report.ExperienceScore,
		Education:     report.EducationScore,
		Format:        report.FormatScore,
		Facts:         facts,
		MissingSkills: report.MissingSkills,
	}
}

// Recommendations 根据报告得分生成导出文档末尾的综合建议列表
// 与问题/建议共用同一张规则表，阈值不会各自漂移
func Recommendations(report *types.ScoreReport) []string {
	return runRules(chanRecommendation, reportInput(report, nil))
}

// StatusLabel 将得分映射为报告中的状态标签
func StatusLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
