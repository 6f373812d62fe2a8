package parser

import "math"

// CosineSimilarity 计算两个向量的余弦相似度，结果在[-1,1]
// 维度不一致或任一向量为零向量时返回0
func CosineSimilarity(v1, v2 []float64) float64 {
	if len(v1) == 0 || len(v1) != len(v2) {
		return 0
	}

	var dot, norm1, norm2 float64
	for i := range v1 {
		dot += v1[i] * v2[i]
		norm1 += v1[i] * v1[i]
		norm2 += v2[i] * v2[i]
	}
	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
}
