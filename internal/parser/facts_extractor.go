// Package parser 负责把原始文本变成评分引擎可以消费的结构化事实，
// 以及对接外部能力（文件文本提取、向量化、命名实体识别）
package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"ats-score-go/internal/tracing"
	"ats-score-go/internal/types"
)

const (
	// minPhoneLength 短于该长度的电话候选会被丢弃
	// 这会误伤一些合法的短号码格式，属于已知的启发式局限
	minPhoneLength = 10
	// maxHeaderLineLength 超过该长度的行不会被当作章节头
	maxHeaderLineLength = 50
	// maxExperienceLines 经历行最多保留的条数
	maxExperienceLines = 10
)

var (
	extractEmailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	extractPhoneRe = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	extractURLRe   = regexp.MustCompile(`http[s]?://[a-zA-Z0-9$\-_@.&+!*\\(\\),%]+`)
)

// FactsExtractor 从原始简历文本抽取 ResumeFacts
// 抽取作用于归一化之前的原文，以保留大小写和排版线索
type FactsExtractor struct {
	vocab    Vocabulary
	skillRes []*regexp.Regexp
	ner      NERClient
	logger   zerolog.Logger
}

// FactsExtractorOption 抽取器配置选项
type FactsExtractorOption func(*FactsExtractor)

// WithNERClient 配置命名实体识别能力，缺省为不做实体识别
func WithNERClient(ner NERClient) FactsExtractorOption {
	return func(e *FactsExtractor) {
		e.ner = ner
	}
}

// WithExtractorLogger 配置日志记录器
func WithExtractorLogger(logger zerolog.Logger) FactsExtractorOption {
	return func(e *FactsExtractor) {
		e.logger = logger
	}
}

// NewFactsExtractor 创建抽取器，vocab 中的空字段沿用内置词表
func NewFactsExtractor(vocab Vocabulary, options ...FactsExtractorOption) *FactsExtractor {
	vocab = vocab.merged()

	extractor := &FactsExtractor{
		vocab:    vocab,
		skillRes: make([]*regexp.Regexp, len(vocab.Skills)),
		ner:      NoopNERClient{},
		logger:   zerolog.Nop(),
	}
	// 技能按整词匹配，\b 对 "c++"、"ci/cd" 这类结尾失效，
	// 所以用显式的非词字符哨兵代替
	for i, skill := range vocab.Skills {
		extractor.skillRes[i] = regexp.MustCompile(
			`(?i)(?:^|[^a-zA-Z0-9+])` + regexp.QuoteMeta(skill) + `(?:$|[^a-zA-Z0-9+])`)
	}

	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// Extract 抽取结构化事实。空文本返回全空字段，不报错
// NER 能力失败时降级为全空实体桶，不影响其余字段
func (e *FactsExtractor) Extract(ctx context.Context, rawText string) *types.ResumeFacts {
	facts := &types.ResumeFacts{
		RawText:  rawText,
		Emails:   e.extractEmails(rawText),
		Phones:   e.extractPhones(rawText),
		URLs:     extractURLRe.FindAllString(rawText, -1),
		Skills:   e.extractSkills(rawText),
		Sections: e.identifySections(rawText),
		Entities: e.extractEntities(ctx, rawText),
	}
	facts.EducationLines = matchLines(rawText, e.vocab.EducationKeywords, 0)
	facts.ExperienceLines = matchLines(rawText, e.vocab.ExperienceKeywords, maxExperienceLines)

	e.logger.Debug().
		Int("emails", len(facts.Emails)).
		Int("phones", len(facts.Phones)).
		Int("skills", len(facts.Skills)).
		Int("sections", len(facts.Sections)).
		Msg("简历事实抽取完成")
	return facts
}

func (e *FactsExtractor) extractEmails(text string) []string {
	return extractEmailRe.FindAllString(text, -1)
}

func (e *FactsExtractor) extractPhones(text string) []string {
	candidates := extractPhoneRe.FindAllString(text, -1)
	phones := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if len(candidate) >= minPhoneLength {
			phones = append(phones, candidate)
		}
	}
	return phones
}

// extractSkills 按词表顺序输出命中的技能，而非出现顺序
func (e *FactsExtractor) extractSkills(text string) []string {
	var found []string
	for i, re := range e.skillRes {
		if re.MatchString(text) {
			found = append(found, e.vocab.Skills[i])
		}
	}
	return found
}

// matchLines 返回包含任一关键词（不区分大小写）的文本行，limit<=0 表示不限
func matchLines(text string, keywords []string, limit int) []string {
	var matched []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, strings.TrimSpace(line))
				break
			}
		}
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched
}

// identifySections 单遍扫描识别章节：
// 短于50字符且含章节头关键词的行开启新章节，后续行归入当前章节正文，
// 没有打开章节时的内容行被丢弃
func (e *FactsExtractor) identifySections(text string) map[string]string {
	sections := make(map[string]string)
	var currentSection string
	var body []string

	closeSection := func() {
		if currentSection != "" {
			sections[currentSection] = strings.Join(body, "\n")
		}
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		matchedHeader := ""
		if len(lower) < maxHeaderLineLength {
			for _, header := range e.vocab.SectionHeaders {
				if strings.Contains(lower, header) {
					matchedHeader = header
					break
				}
			}
		}

		if matchedHeader != "" {
			closeSection()
			currentSection = matchedHeader
			body = nil
			continue
		}
		if currentSection != "" {
			body = append(body, line)
		}
	}
	closeSection()

	return sections
}

// extractEntities 调用外部NER能力并按标签分桶
// 四个桶始终存在；NER失败或超时只记日志，返回空桶
func (e *FactsExtractor) extractEntities(ctx context.Context, text string) map[string][]string {
	entities := map[string][]string{
		types.EntityPersons:       {},
		types.EntityOrganizations: {},
		types.EntityLocations:     {},
		types.EntityDates:         {},
	}
	if text == "" {
		return entities
	}

	spans, err := e.ner.Entities(ctx, text)
	if err != nil {
		tracing.RecordDegradedCapability(trace.SpanFromContext(ctx), "ner", err.Error())
		e.logger.Warn().Err(err).Msg("NER能力不可用，实体桶降级为空")
		return entities
	}

	for _, span := range spans {
		switch span.Label {
		case "PERSON":
			entities[types.EntityPersons] = append(entities[types.EntityPersons], span.Text)
		case "ORG":
			entities[types.EntityOrganizations] = append(entities[types.EntityOrganizations], span.Text)
		case "GPE", "LOC":
			entities[types.EntityLocations] = append(entities[types.EntityLocations], span.Text)
		case "DATE":
			entities[types.EntityDates] = append(entities[types.EntityDates], span.Text)
		}
	}
	return entities
}
