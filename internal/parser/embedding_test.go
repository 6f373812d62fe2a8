package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCosineSimilarity 余弦相似度的基本性质
func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9, "自身相似度为1")
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9, "正交向量相似度为0")
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 1}, []float64{-1, -1}), 1e-9, "反向向量相似度为-1")

	// 退化输入统一返回0
	assert.Zero(t, CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}), "维度不一致")
	assert.Zero(t, CosineSimilarity(nil, nil), "空向量")
	assert.Zero(t, CosineSimilarity([]float64{0, 0}, []float64{1, 2}), "零向量")
}

// TestHashEmbedderDeterministic 相同输入的嵌入结果逐位一致
func TestHashEmbedderDeterministic(t *testing.T) {
	embedder := NewHashEmbedder(0)
	ctx := context.Background()

	first, err := embedder.EmbedStrings(ctx, []string{"python developer with docker experience"})
	require.NoError(t, err)
	second, err := embedder.EmbedStrings(ctx, []string{"python developer with docker experience"})
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Len(t, first[0], DefaultHashDimensions)
	assert.Equal(t, first[0], second[0])
}

// TestHashEmbedderSimilarityOrdering 相关文本的相似度应高于无关文本
func TestHashEmbedderSimilarityOrdering(t *testing.T) {
	embedder := NewHashEmbedder(0)
	vectors, err := embedder.EmbedStrings(context.Background(), []string{
		"senior python engineer building docker pipelines",
		"python engineer with docker pipelines background",
		"pastry chef specializing in croissant lamination",
	})
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	related := CosineSimilarity(vectors[0], vectors[1])
	unrelated := CosineSimilarity(vectors[0], vectors[2])
	assert.Greater(t, related, unrelated)
	assert.InDelta(t, 1.0, CosineSimilarity(vectors[0], vectors[0]), 1e-9)
}

// TestHashEmbedderEmptyText 空文本产生零向量，不报错
func TestHashEmbedderEmptyText(t *testing.T) {
	embedder := NewHashEmbedder(16)
	vectors, err := embedder.EmbedStrings(context.Background(), []string{""})
	require.NoError(t, err)
	require.Len(t, vectors, 1)

	for _, v := range vectors[0] {
		assert.Zero(t, v)
	}
}

// TestOpenAIEmbedderEmbedStrings 验证请求契约与按index重排
func TestOpenAIEmbedderEmbedStrings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, []string{"first", "second"}, req.Input)

		// 故意乱序返回，客户端必须按index重排
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"index":1,"embedding":[0.4,0.5]},{"index":0,"embedding":[0.1,0.2]}]}`))
	}))
	defer server.Close()

	embedder, err := NewOpenAIEmbedder("test-key", server.URL, "", 2)
	require.NoError(t, err)

	vectors, err := embedder.EmbedStrings(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{0.1, 0.2}, vectors[0])
	assert.Equal(t, []float64{0.4, 0.5}, vectors[1])
}

// TestOpenAIEmbedderServerError 非200状态码作为错误上报
func TestOpenAIEmbedderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	embedder, err := NewOpenAIEmbedder("test-key", server.URL, "", 0)
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

// TestNewOpenAIEmbedderValidation 必填参数校验
func TestNewOpenAIEmbedderValidation(t *testing.T) {
	_, err := NewOpenAIEmbedder("", "http://localhost", "", 0)
	assert.Error(t, err, "缺少API密钥应报错")

	_, err = NewOpenAIEmbedder("key", "", "", 0)
	assert.Error(t, err, "缺少服务地址应报错")
}
