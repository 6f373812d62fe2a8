package scorer

import (
	"context"
	"sort"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"ats-score-go/internal/parser"
	"ats-score-go/internal/textproc"
	"ats-score-go/internal/tracing"
	"ats-score-go/internal/types"
)

// ATSScorer 简历-JD匹配度评分引擎
// 嵌入能力在进程启动时注入一次，实例可被多个并发分析请求共享
type ATSScorer struct {
	embedder  embedding.Embedder
	extractor *parser.FactsExtractor
	logger    zerolog.Logger
}

// Option 评分引擎配置选项
type Option func(*ATSScorer)

// WithScorerLogger 配置日志记录器
func WithScorerLogger(logger zerolog.Logger) Option {
	return func(s *ATSScorer) {
		s.logger = logger
	}
}

// NewATSScorer 创建评分引擎。embedder 和 extractor 不能为空
func NewATSScorer(embedder embedding.Embedder, extractor *parser.FactsExtractor, options ...Option) *ATSScorer {
	scorer := &ATSScorer{
		embedder:  embedder,
		extractor: extractor,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(scorer)
	}
	return scorer
}

// Analyze 对一份简历原文和一份JD做完整分析，返回不可变的评分报告
// 对任何合法字符串输入（包括空串）都不会失败：外部能力降级
// 只会体现为回退分值，绝不会让分析中断
func (s *ATSScorer) Analyze(ctx context.Context, resumeRawText, jobDescription string) *types.ScoreReport {
	facts := s.extractor.Extract(ctx, resumeRawText)
	return s.Score(ctx, facts, jobDescription)
}

// Score 基于已抽取的结构化事实计算评分报告
func (s *ATSScorer) Score(ctx context.Context, facts *types.ResumeFacts, jobDescription string) *types.ScoreReport {
	start := time.Now()

	cleanResume := textproc.Clean(facts.RawText)
	cleanJD := textproc.Clean(jobDescription)
	jdPhrases := parser.ExtractJDSkillPhrases(jobDescription)

	keyword := keywordMatch(cleanResume, cleanJD)
	semantic := s.semanticSimilarity(ctx, cleanResume, cleanJD)
	skills := skillsMatch(facts.Skills, jobDescription, jdPhrases)
	experience := experienceQuality(facts.ExperienceLines)
	education := educationQuality(facts.EducationLines)
	format := formatQuality(facts)

	report := &types.ScoreReport{
		OverallScore:       round2(overallScore(keyword, semantic, skills, experience, education, format)),
		KeywordMatchScore:  round2(keyword),
		SemanticSimilarity: round2(semantic),
		SkillsScore:        round2(skills),
		ExperienceScore:    round2(experience),
		EducationScore:     round2(education),
		FormatScore:        round2(format),
		MissingKeywords:    missingKeywords(cleanResume, cleanJD),
		MatchedSkills:      facts.Skills,
		MissingSkills:      missingSkills(jdPhrases, facts.Skills),
		SectionsFound:      sortedSectionNames(facts),
	}

	in := reportInput(report, facts)
	report.Issues = runRules(chanIssue, in)
	report.Suggestions = runRules(chanSuggestion, in)

	s.logger.Debug().
		Float64("overall", report.OverallScore).
		Int("issues", len(report.Issues)).
		Int("suggestions", len(report.Suggestions)).
		Dur("elapsed", time.Since(start)).
		Msg("简历评分完成")
	return report
}

// semanticSimilarity 整篇文档级别的语义相似度
// 嵌入失败时回退为中性50分，保证分析始终能完成
func (s *ATSScorer) semanticSimilarity(ctx context.Context, cleanResume, cleanJD string) float64 {
	vectors, err := s.embedder.EmbedStrings(ctx, []string{cleanResume, cleanJD})
	if err != nil || len(vectors) != 2 {
		reason := "嵌入结果数量异常"
		if err != nil {
			reason = err.Error()
		}
		tracing.RecordDegradedCapability(trace.SpanFromContext(ctx), "embedding", reason)
		s.logger.Warn().Err(err).Msg("嵌入能力不可用，语义相似度回退为中性值")
		return neutralSemanticScore
	}
	return clamp100(parser.CosineSimilarity(vectors[0], vectors[1]) * 100)
}

// sortedSectionNames 章节名按字典序输出，保证报告字节级可复现
func sortedSectionNames(facts *types.ResumeFacts) []string {
	names := facts.SectionNames()
	sort.Strings(names)
	return names
}
