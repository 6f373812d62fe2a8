package report

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-score-go/internal/types"
)

func sampleReport() *types.ScoreReport {
	return &types.ScoreReport{
		OverallScore:       72.5,
		KeywordMatchScore:  66.67,
		SemanticSimilarity: 58.3,
		SkillsScore:        80,
		ExperienceScore:    75,
		EducationScore:     100,
		FormatScore:        90,
		Issues:             []string{"⚠️ Some key skills might be missing"},
		Suggestions:        []string{"💡 Include specific dates for each position"},
		MissingKeywords:    []string{"kubernetes", "terraform"},
		MatchedSkills:      []string{"python", "docker"},
		MissingSkills:      []string{"kubernetes"},
		SectionsFound:      []string{"education", "experience", "skills"},
	}
}

// TestGenerate 渲染出合法的PDF字节流，携带可解析的报告ID
func TestGenerate(t *testing.T) {
	generator := NewGenerator(WithClock(func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}))

	doc, err := generator.Generate(sampleReport(), "resume.pdf")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.True(t, len(doc.Data) > 4 && string(doc.Data[:4]) == "%PDF", "输出应为PDF字节流")

	_, err = uuid.FromString(doc.ID)
	assert.NoError(t, err, "报告ID应为合法UUID")
	assert.Contains(t, doc.Filename, doc.ID)
	assert.Contains(t, doc.Filename, ".pdf")
}

// TestGenerateEmptyReport 空报告也能渲染，生成失败不应依赖分析内容
func TestGenerateEmptyReport(t *testing.T) {
	doc, err := NewGenerator().Generate(&types.ScoreReport{}, "empty.txt")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Data)
}

// TestSanitize 表情前缀等非ASCII字符被剔除，核心字体可渲染
func TestSanitize(t *testing.T) {
	assert.Equal(t, "Email address not found", sanitize("❌ Email address not found"))
	assert.Equal(t, "plain text", sanitize("plain text"))
	assert.Equal(t, "", sanitize("🚀"))
}
