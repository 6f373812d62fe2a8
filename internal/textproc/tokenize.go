package textproc

import (
	"regexp"
	"strings"
)

var (
	// wordRe 匹配字母数字词元，允许内部的连字符和撇号（如 ci-cd、don't）
	wordRe = regexp.MustCompile(`[a-zA-Z0-9]+(?:['\-][a-zA-Z0-9]+)*`)
	// sentenceEndRe 句子终止符后跟空白
	sentenceEndRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Tokenize 将文本拆分为词元序列，不改变大小写
// 分词刻意保持简单：按字母数字边界切分，适用于关键词级别的比较
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return wordRe.FindAllString(text, -1)
}

// Sentences 将文本拆分为句子列表，空白句被丢弃
func Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := sentenceEndRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// IsAlnum 判断词元是否只由字母和数字组成
func IsAlnum(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
