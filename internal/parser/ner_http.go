package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// EntitySpan 命名实体识别结果中的一个片段
type EntitySpan struct {
	// Label 实体标签，如 PERSON / ORG / GPE / LOC / DATE
	Label string `json:"label"`
	// Text 实体原文
	Text string `json:"text"`
}

// NERClient 命名实体识别能力的窄接口
// 实现必须可以被多个并发分析请求安全共享
type NERClient interface {
	// Entities 识别文本中的命名实体
	Entities(ctx context.Context, text string) ([]EntitySpan, error)
}

// NoopNERClient 空实现，在未配置NER服务时使用
type NoopNERClient struct{}

// Entities 始终返回空结果
func (NoopNERClient) Entities(ctx context.Context, text string) ([]EntitySpan, error) {
	return nil, nil
}

var _ NERClient = NoopNERClient{}
var _ NERClient = (*HTTPNERClient)(nil)

// HTTPNERClient 通过HTTP调用外部NER服务（如spaCy封装）
// 服务契约：POST {"text": "..."} -> [{"label": "...", "text": "..."}]
type HTTPNERClient struct {
	// ServerURL NER服务地址，如 http://localhost:8000
	ServerURL string
	// Client 可配置超时的HTTP客户端
	Client *http.Client

	logger zerolog.Logger
}

// NEROption NER客户端配置选项
type NEROption func(*HTTPNERClient)

// WithNERTimeout 配置请求超时
func WithNERTimeout(timeout time.Duration) NEROption {
	return func(c *HTTPNERClient) {
		c.Client.Timeout = timeout
	}
}

// WithNERLogger 配置日志记录器
func WithNERLogger(logger zerolog.Logger) NEROption {
	return func(c *HTTPNERClient) {
		c.logger = logger
	}
}

// NewHTTPNERClient 创建NER HTTP客户端，默认10秒超时
func NewHTTPNERClient(serverURL string, options ...NEROption) *HTTPNERClient {
	client := &HTTPNERClient{
		ServerURL: serverURL,
		Client:    &http.Client{Timeout: 10 * time.Second},
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

type nerRequest struct {
	Text string `json:"text"`
}

// Entities 调用NER服务。失败和超时由调用方降级处理，本方法只负责上报错误
func (c *HTTPNERClient) Entities(ctx context.Context, text string) ([]EntitySpan, error) {
	start := time.Now()

	payload, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("编码NER请求失败: %w", err)
	}

	url := c.ServerURL + "/ent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("创建NER请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NER服务调用失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("NER服务返回状态码 %d: %s", resp.StatusCode, string(body))
	}

	var spans []EntitySpan
	if err := json.NewDecoder(resp.Body).Decode(&spans); err != nil {
		return nil, fmt.Errorf("解析NER响应失败: %w", err)
	}

	c.logger.Debug().
		Int("entities", len(spans)).
		Dur("elapsed", time.Since(start)).
		Msg("NER识别完成")
	return spans, nil
}
