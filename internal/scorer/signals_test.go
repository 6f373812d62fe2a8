package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ats-score-go/internal/types"
)

// TestKeywordMatch 关键词覆盖率按JD去重有效词的交集比例计算
func TestKeywordMatch(t *testing.T) {
	score := keywordMatch("python developer docker", "python docker kubernetes")
	assert.InDelta(t, 66.67, score, 0.01, "命中3个JD词中的2个")

	assert.InDelta(t, 100.0, keywordMatch("python docker", "python docker"), 0.001)
}

// TestKeywordMatchEmptyJD JD无有效词时得分为0
func TestKeywordMatchEmptyJD(t *testing.T) {
	assert.Zero(t, keywordMatch("python developer", ""))
	assert.Zero(t, keywordMatch("python developer", "the and of to"), "纯停用词的JD没有有效词")
}

// TestKeywordMatchMonotonic 简历新增一个命中词不会降低得分
func TestKeywordMatchMonotonic(t *testing.T) {
	jd := "python docker golang"
	before := keywordMatch("python", jd)
	after := keywordMatch("python docker", jd)

	assert.GreaterOrEqual(t, after, before)
}

// TestSkillsMatchAgainstPhrases 按JD技能短语覆盖率计分
func TestSkillsMatchAgainstPhrases(t *testing.T) {
	score := skillsMatch([]string{"python", "sql"}, "ignored", []string{"python", "sql", "docker"})
	assert.InDelta(t, 66.67, score, 0.01)
}

// TestSkillsMatchAlwaysCapped 短语分支同样封顶100
func TestSkillsMatchAlwaysCapped(t *testing.T) {
	// 两条简历技能命中同一条短语，原始比例会超过100
	score := skillsMatch([]string{"python", "python"}, "ignored", []string{"python"})
	assert.Equal(t, 100.0, score)
}

// TestSkillsMatchNoResumeSkills 简历无技能时固定30分
func TestSkillsMatchNoResumeSkills(t *testing.T) {
	assert.Equal(t, noSkillsScore, skillsMatch(nil, "any jd", []string{"python"}))
}

// TestSkillsMatchSubstringFallback JD无技能短语时退化为子串检查
func TestSkillsMatchSubstringFallback(t *testing.T) {
	score := skillsMatch([]string{"python", "docker"}, "We use Python daily", nil)
	assert.InDelta(t, 50.0, score, 0.001, "2个技能命中1个")
}

// TestExperienceQuality 基础分+成果加分+时间线加分
func TestExperienceQuality(t *testing.T) {
	assert.Equal(t, noExperienceScore, experienceQuality(nil))

	// 3行都含年份，1行含成果标记: 50 + 5 + 20
	lines := []string{
		"software engineer 2019 to 2021",
		"intern 2018",
		"increased revenue 20% in 2022",
	}
	assert.InDelta(t, 75.0, experienceQuality(lines), 0.001)
}

// TestExperienceQualityAchievementCap 成果加分上限30
func TestExperienceQualityAchievementCap(t *testing.T) {
	var lines []string
	for i := 0; i < 7; i++ {
		lines = append(lines, "improved the deployment process")
	}
	// 50 + min(7*5, 30)，无年份加分
	assert.InDelta(t, 80.0, experienceQuality(lines), 0.001)
}

// TestExperienceQualityDateBonusThreshold 年份加分需要至少2行含年份
func TestExperienceQualityDateBonusThreshold(t *testing.T) {
	oneDated := experienceQuality([]string{"worked somewhere in 2020", "worked elsewhere"})
	assert.InDelta(t, 50.0, oneDated, 0.001, "只有1行含年份不触发时间线加分")

	twoDated := experienceQuality([]string{"worked somewhere in 2020", "worked elsewhere 2021"})
	assert.InDelta(t, 70.0, twoDated, 0.001)
}

// TestEducationQuality 学位关键词置位80，GPA和年份各+10
func TestEducationQuality(t *testing.T) {
	assert.Equal(t, noEducationScore, educationQuality(nil))
	assert.InDelta(t, 60.0, educationQuality([]string{"high school diploma"}), 0.001)
	assert.InDelta(t, 80.0, educationQuality([]string{"Master of Engineering"}), 0.001)
	assert.InDelta(t, 100.0, educationQuality([]string{"Bachelor of Science, 2018", "GPA: 3.8"}), 0.001)
}

// TestFormatQuality 联系方式、关键章节和正文长度的累加
func TestFormatQuality(t *testing.T) {
	full := &types.ResumeFacts{
		RawText: string(make([]byte, 1000)),
		Emails:  []string{"a@b.com"},
		Phones:  []string{"+1 555 000 1111"},
		Sections: map[string]string{
			"experience": "x",
			"education":  "y",
			"skills":     "z",
		},
	}
	assert.Equal(t, 100.0, formatQuality(full))

	assert.Zero(t, formatQuality(&types.ResumeFacts{}))

	// 仅邮箱 + 长度落在[300,500)
	partial := &types.ResumeFacts{
		RawText: string(make([]byte, 400)),
		Emails:  []string{"a@b.com"},
	}
	assert.InDelta(t, 30.0, formatQuality(partial), 0.001)
}
