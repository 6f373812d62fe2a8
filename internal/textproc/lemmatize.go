package textproc

import "strings"

// 不规则名词的词形映射
var irregularLemmas = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"teeth":    "tooth",
	"feet":     "foot",
	"people":   "person",
	"mice":     "mouse",
	"geese":    "goose",
	"data":     "datum",
	"criteria": "criterion",
	"analyses": "analysis",
	"theses":   "thesis",
}

// 以这些结尾的单数词不应去掉尾部s
var singularSuffixes = []string{"ss", "us", "is", "ous", "ics"}

// Lemmatize 将词元还原为词典形（名词规则）
// 这是一个轻量的规则实现，覆盖常见英文复数变化，不做词性消歧
func Lemmatize(token string) string {
	if token == "" {
		return token
	}

	lower := strings.ToLower(token)
	if lemma, ok := irregularLemmas[lower]; ok {
		return lemma
	}

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 4:
		// companies -> company
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "xes"), strings.HasSuffix(lower, "zes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"),
		strings.HasSuffix(lower, "sses"):
		// boxes -> box, matches -> match
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "s") && len(lower) > 3:
		for _, suffix := range singularSuffixes {
			if strings.HasSuffix(lower, suffix) {
				return lower
			}
		}
		// skills -> skill
		return lower[:len(lower)-1]
	}

	return lower
}
