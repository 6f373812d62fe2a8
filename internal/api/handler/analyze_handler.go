package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ats-score-go/internal/config"
	"ats-score-go/internal/logger"
	"ats-score-go/internal/parser"
	"ats-score-go/internal/report"
	"ats-score-go/internal/scorer"
	"ats-score-go/internal/textproc"
	"ats-score-go/internal/tracing"
	"ats-score-go/internal/types"
)

// maxKeyPhrases 分析响应中关键短语的返回上限
const maxKeyPhrases = 10

// ErrEmptyJobDescription JD为空时拒绝分析请求
var ErrEmptyJobDescription = errors.New("职位描述不能为空")

// AnalyzeHandler 简历分析处理器，负责协调提取、评分和报告导出
type AnalyzeHandler struct {
	cfg       *config.Config
	extractor parser.TextExtractor
	scorer    *scorer.ATSScorer
	reporter  *report.Generator
}

// NewAnalyzeHandler 创建一个新的简历分析处理器
func NewAnalyzeHandler(
	cfg *config.Config,
	extractor parser.TextExtractor,
	atsScorer *scorer.ATSScorer,
	reporter *report.Generator,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:       cfg,
		extractor: extractor,
		scorer:    atsScorer,
		reporter:  reporter,
	}
}

// AnalyzeResponse 简历分析响应
type AnalyzeResponse struct {
	AnalysisID string `json:"analysis_id"`
	Filename   string `json:"filename"`

	Report *types.ScoreReport `json:"report"`

	// Readability 简历正文的Flesch易读性分数 (0-100)
	Readability float64 `json:"readability"`
	// KeyPhrases 简历中的高频关键短语
	KeyPhrases []string `json:"key_phrases"`
}

// HandleAnalyze 处理简历分析请求
// 提取失败是该请求的终止性错误；评分阶段的外部能力降级
// 只体现为回退分值，不会让请求失败
func (h *AnalyzeHandler) HandleAnalyze(ctx context.Context, fileBytes []byte, filename string, jobDescription string) (*AnalyzeResponse, error) {
	if jobDescription == "" {
		return nil, ErrEmptyJobDescription
	}
	span := trace.SpanFromContext(ctx)

	format := parser.FormatFromFilename(filename)
	resumeText, err := h.extractor.ExtractPlainText(ctx, fileBytes, format)
	if err != nil {
		// 文件名常含候选人姓名，入span前按敏感字段掩码
		tracing.RecordErrorWithInfo(span, err, tracing.ErrorTypeExtraction,
			attribute.String("resume.format", format),
			attribute.String("resume.filename", tracing.SafeAttributeValue("filename", filename, tracing.MaxHeaderLength)),
		)
		logger.Error().
			Err(err).
			Str("filename", filename).
			Str("format", format).
			Msg("简历文本提取失败")
		return nil, errors.Wrap(err, "提取简历文本失败")
	}
	annotateAnalyzeSpan(span, resumeText, jobDescription)

	scoreReport := h.scorer.Analyze(ctx, resumeText, jobDescription)

	// 易读性基于原文句子结构，关键短语基于深度清洗后的词序列
	deepCleaned := textproc.DeepClean(resumeText)

	resp := &AnalyzeResponse{
		AnalysisID:  uuid.NewString(),
		Filename:    filename,
		Report:      scoreReport,
		Readability: textproc.Readability(resumeText),
		KeyPhrases:  textproc.KeyPhrases(deepCleaned, maxKeyPhrases),
	}

	logger.Info().
		Str("analysis_id", resp.AnalysisID).
		Str("filename", filename).
		Float64("overall_score", scoreReport.OverallScore).
		Msg("简历分析完成")
	return resp, nil
}

// annotateAnalyzeSpan 把请求正文挂到span属性上，截断后的摘要足够定位问题
func annotateAnalyzeSpan(span trace.Span, resumeText, jobDescription string) {
	span.SetAttributes(
		attribute.String("resume.content", tracing.SafeResumeContent(resumeText)),
		attribute.String("jd.content", tracing.SafeJDContent(jobDescription)),
	)
}

// HandleReport 分析简历并渲染可下载的PDF报告
// 报告渲染失败不影响已完成的分析，作为独立错误上报
func (h *AnalyzeHandler) HandleReport(ctx context.Context, fileBytes []byte, filename string, jobDescription string) (*report.Document, error) {
	analysis, err := h.HandleAnalyze(ctx, fileBytes, filename, jobDescription)
	if err != nil {
		return nil, err
	}

	doc, err := h.reporter.Generate(analysis.Report, filename)
	if err != nil {
		tracing.RecordError(trace.SpanFromContext(ctx), err, tracing.ErrorTypeReport)
		logger.Error().Err(err).Str("filename", filename).Msg("PDF报告渲染失败")
		return nil, errors.Wrap(err, "生成报告失败")
	}
	return doc, nil
}

// HandleAnalyzeText 直接对纯文本简历做分析，跳过文件提取环节
func (h *AnalyzeHandler) HandleAnalyzeText(ctx context.Context, resumeText, jobDescription string) (*AnalyzeResponse, error) {
	if jobDescription == "" {
		return nil, ErrEmptyJobDescription
	}
	annotateAnalyzeSpan(trace.SpanFromContext(ctx), resumeText, jobDescription)

	scoreReport := h.scorer.Analyze(ctx, resumeText, jobDescription)
	deepCleaned := textproc.DeepClean(resumeText)

	return &AnalyzeResponse{
		AnalysisID:  uuid.NewString(),
		Filename:    "",
		Report:      scoreReport,
		Readability: textproc.Readability(resumeText),
		KeyPhrases:  textproc.KeyPhrases(deepCleaned, maxKeyPhrases),
	}, nil
}
