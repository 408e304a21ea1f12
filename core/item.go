package core

import "github.com/rushteam/shoprec/pkg/utils"

// 推荐来源常量：标记一条结果的分数由哪个算法贡献。
// 当一个 SKU 获得 ≥2 个来源的非零贡献时，来源为 SourceHybrid。
const (
	SourceContent       = "content"
	SourceCollaborative = "collaborative"
	SourcePopularity    = "popularity"
	SourceTrending      = "trending"
	SourceHybrid        = "hybrid"
)

// Item 是推荐链路中的统一承载结构：分数、来源、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策；Meta 携带类目/品牌等
// 目录属性，供多样性重排与过滤器读取。
type Item struct {
	SKU    string
	Score  float64
	Source string
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(sku string) *Item {
	return &Item{
		SKU:    sku,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// MetaString 读取 Meta 中的字符串字段，不存在或类型不符返回 ""。
func (it *Item) MetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta[key].(string); ok {
		return s
	}
	return ""
}
