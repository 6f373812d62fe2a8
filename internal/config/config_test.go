package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigFromFile 验证YAML配置能被正确加载并合并默认值
func TestLoadConfigFromFile(t *testing.T) {
	yamlContent := `
server:
  address: ":9090"
embedding:
  backend: "openai"
  base_url: "https://api.example.com/v1/embeddings"
  dimensions: 512
ner:
  enabled: true
  server_url: "http://localhost:8000"
vocabulary:
  skills:
    - golang
    - rust
`
	tmpDir, err := os.MkdirTemp("", "config-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644), "无法写入临时配置文件")

	config, err := LoadConfig(configPath)
	require.NoError(t, err, "加载合法配置不应返回错误")
	require.NotNil(t, config)

	assert.Equal(t, ":9090", config.Server.Address)
	assert.Equal(t, "openai", config.Embedding.Backend)
	assert.Equal(t, 512, config.Embedding.Dimensions)
	assert.True(t, config.NER.Enabled)
	assert.Equal(t, []string{"golang", "rust"}, config.Vocabulary.Skills)

	// 未显式配置的字段应被默认值填充
	assert.Equal(t, 10, config.Server.MaxUploadSizeMB)
	assert.Equal(t, "30s", config.Embedding.Timeout)
	assert.Equal(t, "info", config.Logger.Level)
	assert.Equal(t, "ats-score-go", config.Tracing.ServiceName)
}

// TestLoadConfigDefaultsInTestEnv 测试环境下找不到配置文件时返回默认配置
func TestLoadConfigDefaultsInTestEnv(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, "local", config.Embedding.Backend)
	assert.False(t, config.NER.Enabled)
}

// TestEnvOverrides 环境变量覆盖敏感配置
func TestEnvOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_API_KEY", "env-key")
	t.Setenv("NER_SERVER_URL", "http://ner.internal:8000")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", config.Embedding.APIKey)
	assert.Equal(t, "http://ner.internal:8000", config.NER.ServerURL)
	assert.True(t, config.NER.Enabled, "配置了NER地址即视为启用")
}

// TestCreateSampleConfig 示例配置文件可生成且不覆盖已有文件
func TestCreateSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")

	require.NoError(t, CreateSampleConfig(path))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NotEmpty(t, config.Vocabulary.Skills, "示例配置应带上完整词表")

	assert.Error(t, CreateSampleConfig(path), "已存在的文件不应被覆盖")
}

// TestGetDuration 时长字符串解析与回退
func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration("5s", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("not-a-duration", time.Minute))
}
