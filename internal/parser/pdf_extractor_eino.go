package parser

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"
)

// pdfExtractTimeout 单次PDF解析的超时上限
const pdfExtractTimeout = 30 * time.Second

// PDFExtractor PDF文本提取器接口
type PDFExtractor interface {
	// ExtractTextFromBytes 从字节数组提取纯文本
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error)
}

// EinoPDFExtractor 使用 Eino PDF Parser 提取文本
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
	logger zerolog.Logger
}

// EinoPDFOption PDF提取器配置选项
type EinoPDFOption func(*EinoPDFExtractor)

// WithEinoLogger 配置日志记录器
func WithEinoLogger(logger zerolog.Logger) EinoPDFOption {
	return func(e *EinoPDFExtractor) {
		e.logger = logger
	}
}

var _ PDFExtractor = (*EinoPDFExtractor)(nil)

// NewEinoPDFExtractor 初始化 Eino PDF 文本提取器
// ToPages 置为 false：我们需要整份文档的连续文本，而非按页切分
func NewEinoPDFExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	extractor := &EinoPDFExtractor{
		parser: p,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// ExtractTextFromBytes 从字节数组提取文本，合并解析器返回的所有文档片段
func (e *EinoPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, pdfExtractTimeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data), einoParser.WithURI(uri))
	if err != nil {
		return "", fmt.Errorf("eino解析PDF失败 (URI: %s): %w", uri, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("eino解析PDF无结果 (URI: %s)", uri)
	}

	var builder bytes.Buffer
	for i, doc := range docs {
		builder.WriteString(doc.Content)
		if i < len(docs)-1 {
			builder.WriteString("\n\n")
		}
	}

	text := builder.String()
	e.logger.Debug().
		Str("uri", uri).
		Int("chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("PDF文本提取完成")
	return text, nil
}
