package parser

import (
	"regexp"
	"strings"
)

const (
	// maxJDSkillPhrases 跨所有模式最多收集的技能短语数
	maxJDSkillPhrases = 20
	// minSkillPhraseLength 短于等于该长度的候选行被丢弃
	minSkillPhraseLength = 3
)

// jdSkillBlockRes 定位JD中技能需求区块的启发式模式
// 作用于小写后的JD全文，依赖原始换行结构，所以输入不能先做归一化
var jdSkillBlockRes = []*regexp.Regexp{
	regexp.MustCompile(`(?s)required skills?:?(.*?)(?:preferred|desired|responsibilities|qualifications|\n\n)`),
	regexp.MustCompile(`(?s)must have:?(.*?)(?:nice to have|preferred|\n\n)`),
	regexp.MustCompile(`(?s)technical skills?:?(.*?)(?:soft skills|experience|\n\n)`),
	regexp.MustCompile(`(?s)qualifications?:?(.*?)(?:responsibilities|duties|\n\n)`),
}

// bulletRe 列表项目符号
var bulletRe = regexp.MustCompile(`[•\-*]`)

// ExtractJDSkillPhrases 从JD原文中启发式抽取技能短语，最多返回20条
// 找不到任何需求区块时返回空切片，由调用方决定回退策略
func ExtractJDSkillPhrases(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)

	var phrases []string
	for _, re := range jdSkillBlockRes {
		for _, match := range re.FindAllStringSubmatch(lower, -1) {
			for _, line := range strings.Split(match[1], "\n") {
				line = strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
				if len(line) > minSkillPhraseLength {
					phrases = append(phrases, line)
					if len(phrases) >= maxJDSkillPhrases {
						return phrases
					}
				}
			}
		}
	}
	return phrases
}
