package feature

import (
	"math"
	"strings"

	"github.com/rushteam/shoprec/core"
)

// Extractor 把商品记录抽取为词表快照下的定长特征向量。
// 纯函数：相同商品 + 相同快照必得到相同向量，无副作用。
//
// 向量布局（与 Vocabulary.Dim 对应）：
//
//	[类目 one-hot][品牌 one-hot][价格][规格 Top-K][词频]
//
// 快照之外的类目/品牌得到全零段（不是错误：新类目流入目录属正常情况，
// 下次快照重建时自然纳入）。
type Extractor struct {
	Vocab *Vocabulary
}

func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{Vocab: vocab}
}

// Extract 抽取单个商品的特征向量。
// 商品字段不全（类目/品牌/名称缺失）或价格非法（缺失/负数）时返回
// INVALID_INPUT 数据错误，不做静默修正。
func (e *Extractor) Extract(p *core.Product) (Vector, error) {
	if p == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "feature: nil product")
	}
	if p.Category == "" || p.Brand == "" || p.Name == "" {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"feature: product "+p.SKU+" missing category/brand/name")
	}
	if p.Price <= 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"feature: product "+p.SKU+" has missing or negative price")
	}

	v := e.Vocab
	vec := make(Vector, 0, v.Dim())

	// 类目 one-hot
	seg := make(Vector, len(v.Categories))
	if idx, ok := v.Categories[p.Category]; ok {
		seg[idx] = 1
	}
	vec = append(vec, seg...)

	// 品牌 one-hot
	seg = make(Vector, len(v.Brands))
	if idx, ok := v.Brands[p.Brand]; ok {
		seg[idx] = 1
	}
	vec = append(vec, seg...)

	// 价格：log 压缩长尾，保持量级与其余特征接近
	vec = append(vec, math.Log(p.Price+1)/10)

	// 规格特征：数值 /1000 截断到 [0,1]，布尔 {0,1}，字符串取长度 /100，缺失为 0
	for _, key := range v.SpecKeys {
		vec = append(vec, specFeature(p.Spec, key))
	}

	// 词频特征：min(count/word_count, 0.1) * 10
	words := tokenize(p.Name + " " + p.Description)
	total := float64(len(words))
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	for _, term := range v.Terms {
		if total == 0 {
			vec = append(vec, 0)
			continue
		}
		freq := float64(counts[term]) / total
		vec = append(vec, math.Min(freq, 0.1)*10)
	}

	return vec, nil
}

func specFeature(spec map[string]any, key string) float64 {
	if spec == nil {
		return 0
	}
	raw, ok := spec[key]
	if !ok || raw == nil {
		return 0
	}
	switch val := raw.(type) {
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		return float64(len(val)) / 100
	case float64:
		return clamp01(val / 1000)
	case float32:
		return clamp01(float64(val) / 1000)
	case int:
		return clamp01(float64(val) / 1000)
	case int64:
		return clamp01(float64(val) / 1000)
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// tokenize 小写化并按非字母数字切词。
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
