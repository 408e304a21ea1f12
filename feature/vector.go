package feature

import "math"

// Vector 是共享嵌入空间中的定长特征向量。
// 布局：类目 one-hot ⊕ 品牌 one-hot ⊕ 归一化价格 ⊕ 规格特征 ⊕ 词频特征。
// 不变式：参与相似度比较的向量必须基于同一份词表快照构建。
type Vector []float64

// Empty 表示"无画像可用"的信号：空向量不是错误，下游应回退到热度召回。
func (v Vector) Empty() bool { return len(v) == 0 }

// Cosine 计算两个向量的余弦相似度：dot(a,b) / (‖a‖·‖b‖)。
// 长度不一致或任一范数为 0 时返回 0（视为"无相似"，不抛错误）。
// 本特征空间非负，实际输出落在 [0,1]。
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
