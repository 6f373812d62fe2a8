package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// FallbackPDFExtractor 纯Go的PDF提取实现，在Eino解析器初始化失败时兜底
type FallbackPDFExtractor struct {
	logger zerolog.Logger
}

var _ PDFExtractor = (*FallbackPDFExtractor)(nil)

// NewFallbackPDFExtractor 创建兜底PDF提取器
func NewFallbackPDFExtractor(logger zerolog.Logger) *FallbackPDFExtractor {
	return &FallbackPDFExtractor{logger: logger}
}

// ExtractTextFromBytes 逐页提取纯文本并拼接
func (e *FallbackPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("读取PDF失败 (URI: %s): %w", uri, err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn().Err(err).Int("page", i).Str("uri", uri).Msg("跳过无法解析的PDF页")
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
