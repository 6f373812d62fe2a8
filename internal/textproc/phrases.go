package textproc

import (
	"regexp"
	"sort"
	"strings"
)

var vowelRe = regexp.MustCompile(`[aeiouAEIOU]`)

// KeyPhrases 基于二元/三元词组频率抽取文本关键短语，返回最多 limit 个
// 先去停用词和非字母数字词元，再统计n-gram频率，按频率降序排列
// 频率相同时按短语首次出现顺序排列，保证输出确定
func KeyPhrases(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	raw := Tokenize(strings.ToLower(text))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if IsStopword(w) || !IsAlnum(w) {
			continue
		}
		words = append(words, w)
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	record := func(phrase string) {
		if _, ok := counts[phrase]; !ok {
			firstSeen[phrase] = len(firstSeen)
		}
		counts[phrase]++
	}
	for i := 0; i+1 < len(words); i++ {
		record(words[i] + " " + words[i+1])
	}
	for i := 0; i+2 < len(words); i++ {
		record(words[i] + " " + words[i+1] + " " + words[i+2])
	}

	phrases := make([]string, 0, len(counts))
	for phrase := range counts {
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return firstSeen[phrases[i]] < firstSeen[phrases[j]]
	})

	if len(phrases) > limit {
		phrases = phrases[:limit]
	}
	return phrases
}

// Readability 计算Flesch易读性分数并归一化到[0,100]
// 音节数用元音计数近似，与参考实现保持一致
func Readability(text string) float64 {
	sentences := Sentences(text)
	words := Tokenize(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, word := range words {
		n := len(vowelRe.FindAllString(word, -1))
		if n < 1 {
			n = 1
		}
		syllables += n
	}

	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(syllables) / float64(len(words))
	flesch := 206.835 - 1.015*avgSentenceLen - 84.6*avgSyllables

	if flesch < 0 {
		return 0
	}
	if flesch > 100 {
		return 100
	}
	return flesch
}
