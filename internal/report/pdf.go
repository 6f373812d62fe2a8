package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"

	"ats-score-go/internal/scorer"
	"ats-score-go/internal/types"
)

const reportTitle = "ATS Resume Analysis Report"

// Document 一份渲染完成的导出报告
type Document struct {
	// ID 报告唯一标识
	ID string
	// Filename 建议的下载文件名
	Filename string
	// Data PDF字节流
	Data []byte
}

// Generator 将评分报告渲染为静态分页PDF
// 只读消费 ScoreReport，渲染失败不影响已完成的分析结果
type Generator struct {
	logger zerolog.Logger
	now    func() time.Time
}

// GeneratorOption 报告生成器配置选项
type GeneratorOption func(*Generator)

// WithReportLogger 配置日志记录器
func WithReportLogger(logger zerolog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock 配置时间源，测试时注入固定时钟
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator 创建报告生成器
func NewGenerator(options ...GeneratorOption) *Generator {
	generator := &Generator{
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, option := range options {
		option(generator)
	}
	return generator
}

// Generate 渲染PDF报告
func (g *Generator) Generate(rep *types.ScoreReport, resumeFilename string) (*Document, error) {
	start := time.Now()

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("生成报告ID失败: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.addMetadata(pdf, rep, resumeFilename)
	g.addScoreTable(pdf, rep)
	g.addNumberedSection(pdf, "Issues Found", rep.Issues)
	g.addNumberedSection(pdf, "Improvement Suggestions", rep.Suggestions)
	g.addKeywordSection(pdf, rep)
	g.addSkillsSection(pdf, rep)
	g.addRecommendations(pdf, rep)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("渲染PDF报告失败: %w", err)
	}

	doc := &Document{
		ID:       id.String(),
		Filename: fmt.Sprintf("ats-report-%s.pdf", id.String()),
		Data:     buf.Bytes(),
	}
	g.logger.Debug().
		Str("report_id", doc.ID).
		Int("bytes", len(doc.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("PDF报告生成完成")
	return doc, nil
}

func (g *Generator) addMetadata(pdf *fpdf.Fpdf, rep *types.ScoreReport, resumeFilename string) {
	rows := [][2]string{
		{"Report Generated:", g.now().Format("2006-01-02 15:04:05")},
		{"Resume File:", sanitize(resumeFilename)},
		{"Overall ATS Score:", fmt.Sprintf("%.2f%%", rep.OverallScore)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(120, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (g *Generator) addScoreTable(pdf *fpdf.Fpdf, rep *types.ScoreReport) {
	g.sectionHeader(pdf, "Score Breakdown")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 8, "Category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Score", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 8, "Status", "1", 1, "C", false, 0, "")

	rows := []struct {
		category string
		score    float64
	}{
		{"Keyword Match", rep.KeywordMatchScore},
		{"Skills Match", rep.SkillsScore},
		{"Experience", rep.ExperienceScore},
		{"Education", rep.EducationScore},
		{"Format & Structure", rep.FormatScore},
		{"Semantic Similarity", rep.SemanticSimilarity},
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(80, 8, row.category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f%%", row.score), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, scorer.StatusLabel(row.score), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func (g *Generator) addNumberedSection(pdf *fpdf.Fpdf, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	g.sectionHeader(pdf, title)

	pdf.SetFont("Helvetica", "", 10)
	for i, line := range lines {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, sanitize(line)), "", "L", false)
	}
	pdf.Ln(6)
}

func (g *Generator) addKeywordSection(pdf *fpdf.Fpdf, rep *types.ScoreReport) {
	if len(rep.MissingKeywords) == 0 {
		return
	}
	keywords := rep.MissingKeywords
	if len(keywords) > 20 {
		keywords = keywords[:20]
	}

	g.sectionHeader(pdf, "Missing Keywords")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, "Consider adding these keywords: "+sanitize(strings.Join(keywords, ", ")), "", "L", false)
	pdf.Ln(6)
}

func (g *Generator) addSkillsSection(pdf *fpdf.Fpdf, rep *types.ScoreReport) {
	if len(rep.MatchedSkills) == 0 {
		return
	}
	g.sectionHeader(pdf, "Matched Skills")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, "Skills found in your resume: "+sanitize(strings.Join(rep.MatchedSkills, ", ")), "", "L", false)
	pdf.Ln(6)
}

func (g *Generator) addRecommendations(pdf *fpdf.Fpdf, rep *types.ScoreReport) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Final Recommendations", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, rec := range scorer.Recommendations(rep) {
		pdf.MultiCell(0, 6, "- "+sanitize(rec), "", "L", false)
		pdf.Ln(2)
	}
}

func (g *Generator) sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
}

// sanitize 剔除核心字体无法渲染的非ASCII字符（诊断文案里的表情前缀等）
func sanitize(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			builder.WriteRune(r)
		}
	}
	return strings.TrimSpace(builder.String())
}
