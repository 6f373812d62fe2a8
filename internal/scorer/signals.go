package scorer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"ats-score-go/internal/textproc"
	"ats-score-go/internal/types"
)

// 各信号在输入缺失时的固定保底分
const (
	noSkillsScore     = 30.0
	noExperienceScore = 30.0
	noEducationScore  = 40.0

	experienceBaseScore = 50.0
	educationBaseScore  = 60.0
	degreeScore         = 80.0

	// neutralSemanticScore 嵌入能力不可用时语义相似度的中性回退值
	neutralSemanticScore = 50.0
)

var (
	yearRe    = regexp.MustCompile(`\d{4}`)
	percentRe = regexp.MustCompile(`\d+%`)
	dollarRe  = regexp.MustCompile(`\$[\d,]+`)
)

// achievementVerbs 经历行中的成果动词，命中任意一个即视为量化成果
var achievementVerbs = []string{
	"increased", "decreased", "improved", "reduced",
	"achieved", "exceeded", "delivered", "managed",
}

// degreeKeywords 学位级别关键词
var degreeKeywords = []string{"bachelor", "master", "phd", "doctorate", "mba", "associate"}

// resumeLength 正文长度按字符数统计，多字节文本不因编码膨胀换档
// 长度规则和格式信号共用该口径
func resumeLength(rawText string) int {
	return utf8.RuneCountInString(rawText)
}

// clamp100 将得分收敛到[0,100]
func clamp100(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// distinctQualifyingWords 取文本中去重后的有效词：纯字母数字且非停用词
func distinctQualifyingWords(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, token := range textproc.Tokenize(text) {
		if textproc.IsAlnum(token) && !textproc.IsStopword(token) {
			words[token] = struct{}{}
		}
	}
	return words
}

// keywordMatch 关键词覆盖率：简历与JD的去重有效词交集占JD有效词的比例
// JD没有任何有效词时返回0
func keywordMatch(cleanResume, cleanJD string) float64 {
	resumeWords := distinctQualifyingWords(cleanResume)
	jdWords := distinctQualifyingWords(cleanJD)
	if len(jdWords) == 0 {
		return 0
	}

	common := 0
	for word := range jdWords {
		if _, ok := resumeWords[word]; ok {
			common++
		}
	}
	return clamp100(float64(common) / float64(len(jdWords)) * 100)
}

// skillsMatch 技能匹配度
// 简历无技能时固定30分。JD抽取出技能短语时按短语覆盖率计分；
// 否则退化为检查技能在JD全文中的子串出现率。两个分支统一封顶100
func skillsMatch(resumeSkills []string, jobDescription string, jdPhrases []string) float64 {
	if len(resumeSkills) == 0 {
		return noSkillsScore
	}

	if len(jdPhrases) == 0 {
		jdLower := strings.ToLower(jobDescription)
		matched := 0
		for _, skill := range resumeSkills {
			if strings.Contains(jdLower, strings.ToLower(skill)) {
				matched++
			}
		}
		return clamp100(float64(matched) / float64(len(resumeSkills)) * 100)
	}

	phraseSet := make(map[string]struct{}, len(jdPhrases))
	for _, phrase := range jdPhrases {
		phraseSet[strings.ToLower(phrase)] = struct{}{}
	}
	matched := 0
	for _, skill := range resumeSkills {
		if _, ok := phraseSet[strings.ToLower(skill)]; ok {
			matched++
		}
	}
	return clamp100(float64(matched) / float64(len(jdPhrases)) * 100)
}

// hasAchievementMarker 判断经历行是否包含量化成果标记：百分比、金额或成果动词
func hasAchievementMarker(line string) bool {
	lower := strings.ToLower(line)
	if percentRe.MatchString(lower) || dollarRe.MatchString(lower) {
		return true
	}
	for _, verb := range achievementVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// experienceQuality 经历质量
// 基础50分；每条含成果标记的行+5，成果加分上限30；
// 至少2行含四位年份再+20（体现清晰的时间线）
func experienceQuality(experienceLines []string) float64 {
	if len(experienceLines) == 0 {
		return noExperienceScore
	}

	score := experienceBaseScore

	achievements := 0
	for _, line := range experienceLines {
		if hasAchievementMarker(line) {
			achievements++
		}
	}
	if achievements > 0 {
		bonus := float64(achievements) * 5
		if bonus > 30 {
			bonus = 30
		}
		score += bonus
	}

	datedLines := 0
	for _, line := range experienceLines {
		if yearRe.MatchString(line) {
			datedLines++
		}
	}
	if datedLines >= 2 {
		score += 20
	}

	return clamp100(score)
}

// educationQuality 教育质量
// 基础60分；出现学位关键词时直接置为80（置位而非累加）；
// 提到GPA/成绩+10；出现四位年份+10
func educationQuality(educationLines []string) float64 {
	if len(educationLines) == 0 {
		return noEducationScore
	}

	score := educationBaseScore
	for _, line := range educationLines {
		lower := strings.ToLower(line)
		found := false
		for _, degree := range degreeKeywords {
			if strings.Contains(lower, degree) {
				score = degreeScore
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	for _, line := range educationLines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "gpa") || strings.Contains(lower, "grade") {
			score += 10
			break
		}
	}

	for _, line := range educationLines {
		if yearRe.MatchString(line) {
			score += 10
			break
		}
	}

	return clamp100(score)
}

// formatQuality 格式与结构质量
// 联系方式各+20；experience/education/skills三个关键章节各+20；
// 正文长度落在[500,5000]+20，落在[300,500)或(5000,7000]+10
func formatQuality(facts *types.ResumeFacts) float64 {
	score := 0.0

	if len(facts.Emails) > 0 {
		score += 20
	}
	if len(facts.Phones) > 0 {
		score += 20
	}

	for _, section := range []string{"experience", "education", "skills"} {
		if facts.HasSection(section) {
			score += 20
		}
	}

	length := resumeLength(facts.RawText)
	switch {
	case length >= 500 && length <= 5000:
		score += 20
	case (length >= 300 && length < 500) || (length > 5000 && length <= 7000):
		score += 10
	}

	return clamp100(score)
}
