package scorer

import (
	"math"
	"sort"
	"strings"

	"ats-score-go/internal/textproc"
)

// 六个分项的聚合权重，固定常量且总和恰为1.0
const (
	weightKeyword    = 0.25
	weightSemantic   = 0.20
	weightSkills     = 0.25
	weightExperience = 0.15
	weightEducation  = 0.10
	weightFormat     = 0.05
)

const (
	// maxMissingKeywords 缺失关键词最多返回的条数
	maxMissingKeywords = 15
	// missingKeywordPool 参与筛选的JD高频词上限
	missingKeywordPool = 50
	// maxMissingSkills 参与缺失技能推导的JD技能短语数
	maxMissingSkills = 5
)

// round2 四舍五入到2位小数，报告中所有得分统一用此精度
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// overallScore 按固定权重聚合六个分项
func overallScore(keyword, semantic, skills, experience, education, format float64) float64 {
	return keyword*weightKeyword +
		semantic*weightSemantic +
		skills*weightSkills +
		experience*weightExperience +
		education*weightEducation +
		format*weightFormat
}

// missingKeywords 找出JD中高频但简历缺失的关键词
// 按JD词频降序排列（频次相同时保持首次出现顺序），只保留出现超过1次、
// 长度大于3、纯字母数字且非停用词的词，最多返回15个
func missingKeywords(cleanResume, cleanJD string) []string {
	resumeWords := make(map[string]struct{})
	for _, token := range textproc.Tokenize(cleanResume) {
		resumeWords[token] = struct{}{}
	}

	counts := make(map[string]int)
	var order []string
	for _, token := range textproc.Tokenize(cleanJD) {
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// 稳定排序：频次降序，平频保持首次出现顺序
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > missingKeywordPool {
		order = order[:missingKeywordPool]
	}

	var missing []string
	for _, word := range order {
		if textproc.IsStopword(word) || len(word) <= 3 || !textproc.IsAlnum(word) {
			continue
		}
		if _, present := resumeWords[word]; present {
			continue
		}
		if counts[word] <= 1 {
			continue
		}
		missing = append(missing, word)
		if len(missing) >= maxMissingKeywords {
			break
		}
	}
	return missing
}

// missingSkills 从JD技能短语的前5条中筛出简历未覆盖的技能
func missingSkills(jdPhrases, resumeSkills []string) []string {
	skillSet := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		skillSet[strings.ToLower(skill)] = struct{}{}
	}

	pool := jdPhrases
	if len(pool) > maxMissingSkills {
		pool = pool[:maxMissingSkills]
	}

	var missing []string
	for _, phrase := range pool {
		if _, present := skillSet[strings.ToLower(phrase)]; !present {
			missing = append(missing, phrase)
		}
	}
	return missing
}
