package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-score-go/internal/parser"
	"ats-score-go/internal/types"
)

func newTestScorer() *ATSScorer {
	return NewATSScorer(parser.NewHashEmbedder(0), parser.NewFactsExtractor(parser.Vocabulary{}))
}

const scorerSampleResume = `Jane Doe
jane.doe@example.com
+1 (555) 123-4567
https://github.com/janedoe

Summary
Senior backend engineer focused on distributed billing systems.

Experience
Software Engineer at Initech (2019 - 2023)
Increased billing throughput 40% and reduced costs by $120,000
Intern at Globex (2018)

Education
Bachelor of Science, State University, 2018
GPA: 3.8

Skills
Python, SQL, Docker, Kubernetes, AWS`

const scorerSampleJD = `Backend Engineer

Required Skills:
- python
- docker
- kubernetes

Responsibilities:
Build and operate billing services. Improve billing throughput and billing reliability.`

// TestAnalyzeEmptyInput 空输入必须产出合法报告：保底分值齐全、问题列表非空
func TestAnalyzeEmptyInput(t *testing.T) {
	report := newTestScorer().Analyze(context.Background(), "", "")
	require.NotNil(t, report)

	assert.Zero(t, report.KeywordMatchScore)
	assert.Zero(t, report.SemanticSimilarity)
	assert.Equal(t, 30.0, report.SkillsScore)
	assert.Equal(t, 30.0, report.ExperienceScore)
	assert.Equal(t, 40.0, report.EducationScore)
	assert.Zero(t, report.FormatScore)
	// 0.25*0 + 0.20*0 + 0.25*30 + 0.15*30 + 0.10*40 + 0.05*0
	assert.InDelta(t, 16.0, report.OverallScore, 0.01)

	require.NotEmpty(t, report.Issues)
	assert.Contains(t, report.Issues, "❌ Email address not found")
	assert.Contains(t, report.Issues, "❌ Phone number not found")
	assert.Contains(t, report.Issues, "❌ Resume is too short - add more relevant content")
}

// TestAnalyzeScoreRange 所有得分都落在[0,100]
func TestAnalyzeScoreRange(t *testing.T) {
	report := newTestScorer().Analyze(context.Background(), scorerSampleResume, scorerSampleJD)

	for name, score := range report.SubScores() {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 100.0, name)
	}
	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 100.0)
}

// TestAnalyzeDeterministic 相同输入两次分析产出完全一致的报告
func TestAnalyzeDeterministic(t *testing.T) {
	scorer := newTestScorer()
	ctx := context.Background()

	first := scorer.Analyze(ctx, scorerSampleResume, scorerSampleJD)
	second := scorer.Analyze(ctx, scorerSampleResume, scorerSampleJD)

	assert.Equal(t, first, second)
}

// TestAnalyzeZeroKeywordJD JD去停用词后没有有效词时关键词得分为0
func TestAnalyzeZeroKeywordJD(t *testing.T) {
	report := newTestScorer().Analyze(context.Background(), scorerSampleResume, "the and of to a")
	assert.Zero(t, report.KeywordMatchScore)
}

// TestAnalyzeMissingSkillsDerivation 技能缺口来自JD技能短语的前5条
func TestAnalyzeMissingSkillsDerivation(t *testing.T) {
	report := newTestScorer().Analyze(context.Background(), scorerSampleResume, scorerSampleJD)

	assert.Contains(t, report.MatchedSkills, "python")
	assert.Contains(t, report.MatchedSkills, "docker")
	assert.NotContains(t, report.MissingSkills, "python", "简历已覆盖的技能不算缺口")
}

// TestAnalyzeShortResumeScenario 无联系方式的短简历：格式分低且问题列表命中三项
func TestAnalyzeShortResumeScenario(t *testing.T) {
	resume := strings.Repeat("plain narrative text about tasks ", 6)
	require.Less(t, len(resume), 300)
	jd := strings.Repeat("billing platform operations engineering delivery ", 100)

	report := newTestScorer().Analyze(context.Background(), resume, jd)

	assert.LessOrEqual(t, report.FormatScore, 40.0)
	assert.Contains(t, report.Issues, "❌ Email address not found")
	assert.Contains(t, report.Issues, "❌ Phone number not found")
	assert.Contains(t, report.Issues, "❌ Resume is too short - add more relevant content")
}

// TestAnalyzeSectionsSorted 章节名按字典序输出，保证报告可复现
func TestAnalyzeSectionsSorted(t *testing.T) {
	report := newTestScorer().Analyze(context.Background(), scorerSampleResume, scorerSampleJD)

	require.NotEmpty(t, report.SectionsFound)
	assert.True(t, sortIsSorted(report.SectionsFound))
	assert.Contains(t, report.SectionsFound, "experience")
	assert.Contains(t, report.SectionsFound, "skills")
}

func sortIsSorted(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}

// brokenEmbedder 始终失败的嵌入实现
type brokenEmbedder struct{}

func (brokenEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	return nil, errors.New("嵌入服务不可达")
}

// TestSemanticSimilarityFallback 嵌入失败时语义相似度回退为中性50
func TestSemanticSimilarityFallback(t *testing.T) {
	scorer := NewATSScorer(brokenEmbedder{}, parser.NewFactsExtractor(parser.Vocabulary{}))
	report := scorer.Analyze(context.Background(), scorerSampleResume, scorerSampleJD)

	assert.Equal(t, 50.0, report.SemanticSimilarity)
}

// TestScoreWithPreExtractedFacts 可以复用已抽取的事实直接评分
func TestScoreWithPreExtractedFacts(t *testing.T) {
	facts := &types.ResumeFacts{
		RawText: "short",
		Skills:  []string{"python"},
	}
	report := newTestScorer().Score(context.Background(), facts, "python everywhere")

	assert.Equal(t, []string{"python"}, report.MatchedSkills)
	assert.Equal(t, 100.0, report.SkillsScore, "无短语回退分支：1个技能全部命中")
}
