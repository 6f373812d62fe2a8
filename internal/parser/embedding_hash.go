package parser

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/cloudwego/eino/components/embedding"

	"ats-score-go/internal/textproc"
)

// DefaultHashDimensions 本地嵌入器的默认向量维度
const DefaultHashDimensions = 256

// HashEmbedder 基于特征哈希的本地词袋嵌入器
// 不依赖任何外部模型或网络，嵌入结果对相同输入完全确定，
// 适合作为语义相似度的轻量回退实现。无内部可变状态，可并发使用
type HashEmbedder struct {
	dimensions int
}

var _ embedding.Embedder = (*HashEmbedder)(nil)

// NewHashEmbedder 创建本地嵌入器，dimensions<=0 时使用默认维度
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultHashDimensions
	}
	return &HashEmbedder{dimensions: dimensions}
}

// EmbedStrings 将每段文本映射为L2归一化的词频哈希向量
func (e *HashEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

func (e *HashEmbedder) embed(text string) []float64 {
	vector := make([]float64, e.dimensions)

	tokens := textproc.Tokenize(strings.ToLower(text))
	counts := make(map[string]int, len(tokens))
	total := 0
	for _, token := range tokens {
		if textproc.IsStopword(token) || len(token) <= 2 {
			continue
		}
		counts[token]++
		total++
	}
	if total == 0 {
		return vector
	}

	for token, count := range counts {
		h := fnv.New64a()
		h.Write([]byte(token))
		sum := h.Sum64()

		index := int(sum % uint64(e.dimensions))
		// 用哈希的另一位决定符号，抵消不同词元撞同一维度带来的偏置
		sign := 1.0
		if (sum>>63)&1 == 1 {
			sign = -1.0
		}
		// 次线性词频加权，抑制高频词主导整个向量
		vector[index] += sign * (1 + math.Log(float64(count)))
	}

	// L2归一化
	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}
