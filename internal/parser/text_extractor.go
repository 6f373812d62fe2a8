package parser

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"
)

// 支持的声明格式
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatTXT  = "txt"
)

// TextExtractor 文件文本提取协作方：评分核心只消费它输出的纯文本
type TextExtractor interface {
	// ExtractPlainText 按声明格式尽力提取可见文本
	// 失败时返回可被 errors.Is(err, ErrExtractionFailed) 识别的错误
	ExtractPlainText(ctx context.Context, data []byte, format string) (string, error)
}

// xmlTagRe 剥离DOCX正文中残留的XML标签
var xmlTagRe = regexp.MustCompile(`<[^>]*>`)

// CompositeTextExtractor 按格式分派到具体实现
type CompositeTextExtractor struct {
	pdf    PDFExtractor
	logger zerolog.Logger
}

var _ TextExtractor = (*CompositeTextExtractor)(nil)

// NewCompositeTextExtractor 创建组合提取器，pdf 不能为空
func NewCompositeTextExtractor(pdf PDFExtractor, logger zerolog.Logger) *CompositeTextExtractor {
	return &CompositeTextExtractor{pdf: pdf, logger: logger}
}

// FormatFromFilename 按扩展名推断声明格式，未知扩展名归为纯文本
func FormatFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatTXT
	}
}

// ExtractPlainText 提取纯文本。任何读取失败都包装为 ErrExtractionFailed
func (e *CompositeTextExtractor) ExtractPlainText(ctx context.Context, data []byte, format string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case FormatPDF:
		text, err := e.pdf.ExtractTextFromBytes(ctx, data, "upload.pdf")
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text, nil

	case FormatDOCX:
		text, err := extractDocxText(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return text, nil

	case FormatTXT, "text", "plain":
		// 纯文本直接透传，仅替换非法UTF-8序列
		return strings.ToValidUTF8(string(data), " "), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// extractDocxText 读取DOCX正文。库返回的内容仍带着XML标记，
// 这里把段落标签换成换行后剥掉其余标签
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析DOCX失败: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
