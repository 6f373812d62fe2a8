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

// TestHTTPNERClientEntities 验证 /ent 契约与响应解析
func TestHTTPNERClientEntities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ent", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jane Doe worked at Initech", req.Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"PERSON","text":"Jane Doe"},{"label":"ORG","text":"Initech"}]`))
	}))
	defer server.Close()

	client := NewHTTPNERClient(server.URL)
	spans, err := client.Entities(context.Background(), "Jane Doe worked at Initech")
	require.NoError(t, err)
	assert.Equal(t, []EntitySpan{
		{Label: "PERSON", Text: "Jane Doe"},
		{Label: "ORG", Text: "Initech"},
	}, spans)
}

// TestHTTPNERClientServerError 服务端错误透传给调用方降级
func TestHTTPNERClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPNERClient(server.URL)
	_, err := client.Entities(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

// TestNoopNERClient 空实现返回空结果
func TestNoopNERClient(t *testing.T) {
	spans, err := NoopNERClient{}.Entities(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Empty(t, spans)
}
