package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
)

// OpenAIEmbedder 通过OpenAI兼容的 /embeddings 端点计算文档向量
// 实现 embedding.Embedder 接口，可与本地嵌入器互换
type OpenAIEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// OpenAIEmbedderOption 嵌入客户端配置选项
type OpenAIEmbedderOption func(*OpenAIEmbedder)

// WithEmbedderTimeout 配置单次嵌入请求的超时
func WithEmbedderTimeout(timeout time.Duration) OpenAIEmbedderOption {
	return func(e *OpenAIEmbedder) {
		e.httpClient.Timeout = timeout
	}
}

// WithEmbedderLogger 配置日志记录器
func WithEmbedderLogger(logger zerolog.Logger) OpenAIEmbedderOption {
	return func(e *OpenAIEmbedder) {
		e.logger = logger
	}
}

var _ embedding.Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder 创建OpenAI兼容的嵌入客户端
func NewOpenAIEmbedder(apiKey, baseURL, model string, dimensions int, options ...OpenAIEmbedderOption) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("嵌入服务的API密钥不能为空")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("嵌入服务的地址不能为空")
	}
	if model == "" {
		model = "text-embedding-3-small"
	}

	embedder := &OpenAIEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(embedder)
	}
	return embedder, nil
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
	Encoding   string   `json:"encoding_format,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// EmbedStrings 批量嵌入文本，返回与输入同序的向量
func (e *OpenAIEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	start := time.Now()

	reqBody := embeddingRequest{
		Model:      e.model,
		Input:      texts,
		Dimensions: e.dimensions,
		Encoding:   "float",
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("编码嵌入请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("创建嵌入请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("嵌入服务调用失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("嵌入服务返回状态码 %d: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("解析嵌入响应失败: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("嵌入服务错误: %s", parsed.Error.Message)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("嵌入结果数量不匹配: 期望 %d, 实际 %d", len(texts), len(parsed.Data))
	}

	// 按index重排，响应顺序不保证与请求一致
	vectors := make([][]float64, len(texts))
	for _, item := range parsed.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("嵌入结果index越界: %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}

	e.logger.Debug().
		Int("texts", len(texts)).
		Str("model", e.model).
		Dur("elapsed", time.Since(start)).
		Msg("文档嵌入完成")
	return vectors, nil
}
