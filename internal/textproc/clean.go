// Package textproc 提供评分流水线使用的文本归一化与基础NLP工具
package textproc

import (
	"regexp"
	"strings"
)

var (
	// urlRe 匹配URL类子串（http开头或www.开头）
	urlRe = regexp.MustCompile(`http\S+|www\.\S+`)
	// emailRe 匹配邮箱类子串
	emailRe = regexp.MustCompile(`\S+@\S+`)
	// noiseRe 匹配基础字符集之外的噪声字符
	noiseRe = regexp.MustCompile(`[^a-z0-9\s.,;:!?-]`)
)

// Clean 对文本做基础归一化：小写、去URL/邮箱、去噪声字符、折叠空白
// 空输入返回空串。该函数满足幂等性：Clean(Clean(x)) == Clean(x)
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = noiseRe.ReplaceAllString(text, " ")

	// 折叠连续空白为单个空格
	return strings.Join(strings.Fields(text), " ")
}

// DeepClean 在 Clean 的基础上分词、去停用词、丢弃长度<=2的词元并做词形还原
// 仅用于关键短语抽取和可读性计算，主评分流水线使用 Clean
func DeepClean(text string) string {
	text = Clean(text)

	tokens := Tokenize(text)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsStopword(token) || len(token) <= 2 {
			continue
		}
		kept = append(kept, Lemmatize(token))
	}

	return strings.Join(kept, " ")
}
