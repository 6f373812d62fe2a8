package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCleanBasic 验证基础归一化：小写、去URL/邮箱、折叠空白
func TestCleanBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"空输入", "", ""},
		{"小写化", "Senior Go Engineer", "senior go engineer"},
		{"去除URL", "see https://example.com/me for details", "see for details"},
		{"去除www链接", "visit www.example.com today", "visit today"},
		{"去除邮箱", "contact me at jane@example.com now", "contact me at now"},
		{"噪声字符替换为空格", "go/java (remote)", "go java remote"},
		{"折叠空白", "a   b\t\nc", "a b c"},
		{"保留基础标点", "built apis: rest, graphql!", "built apis: rest, graphql!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

// TestCleanIdempotent 验证 Clean 的幂等性：Clean(Clean(x)) == Clean(x)
func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Jane Doe <jane@example.com> https://github.com/jane",
		"10+ years C++ & Go; AWS/GCP!!!",
		"Experience:\n- Built systems\n- Led teams (2019-2023)",
		"www.portfolio.dev | +1 (555) 123-4567",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		require.Equal(t, once, twice, "Clean 应当幂等: %q", input)
	}
}

// TestDeepClean 验证深度清洗：去停用词、短词元和词形还原
func TestDeepClean(t *testing.T) {
	got := DeepClean("The engineers are building scalable systems")
	// "the"/"are" 是停用词，复数被还原
	assert.Equal(t, "engineer building scalable system", got)

	assert.Empty(t, DeepClean(""), "空输入应返回空串")
	assert.Empty(t, DeepClean("is a of"), "全停用词输入应返回空串")
}
