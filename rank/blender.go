package rank

import (
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// WeightedList 是一份待混排的召回结果及其权重。
// Source 是该来源的标签（content/collaborative/popularity/...），
// 同一标签的多个列表（如 u2i 与 i2i）视为同一来源。
type WeightedList struct {
	Items  []*core.Item
	Weight float64
	Source string
}

// Blender 把多个异构来源的打分列表归一化、加权、合并为一个有序列表。
//
// 两步走（先归一再加权）是必须的：原始分数跨来源不可比
// （余弦 ∈[0,1]、热度无上界、协同分数尺度未知），按来源独立做
// max 归一化之后，权重才有统一的含义。
//
// 算法：
//  1. 每个来源独立取 max_score 归一化（全零列表除数取 1，避免除零）
//  2. 归一化分 × 来源权重，按 SKU 累加，并记录贡献来源
//  3. 来源标记：≥2 个不同来源贡献记 hybrid，否则记该来源标签
//  4. 按累计分降序，平分按首次出现顺序，截断到 limit
type Blender struct{}

// Blend 执行混排。limit <= 0 时不截断。
func (b *Blender) Blend(lists []WeightedList, limit int) []*core.Item {
	type blended struct {
		item    *core.Item
		sources map[string]struct{}
		order   int // 首次出现顺序，平分时保持确定性
	}
	acc := make(map[string]*blended)
	orderSeq := 0

	for _, list := range lists {
		if len(list.Items) == 0 {
			continue
		}

		var maxScore float64
		for _, it := range list.Items {
			if it != nil && it.Score > maxScore {
				maxScore = it.Score
			}
		}
		div := maxScore
		if div <= 0 {
			div = 1 // 全零列表：归一化结果仍为 0
		}

		for _, it := range list.Items {
			if it == nil || it.SKU == "" {
				continue
			}
			contribution := (it.Score / div) * list.Weight

			entry, ok := acc[it.SKU]
			if !ok {
				merged := core.NewItem(it.SKU)
				entry = &blended{
					item:    merged,
					sources: make(map[string]struct{}),
					order:   orderSeq,
				}
				orderSeq++
				acc[it.SKU] = entry
			}
			entry.item.Score += contribution
			entry.sources[list.Source] = struct{}{}

			// 透传目录属性与解释标签
			for k, v := range it.Meta {
				if _, exists := entry.item.Meta[k]; !exists {
					entry.item.Meta[k] = v
				}
			}
			for k, v := range it.Labels {
				entry.item.PutLabel(k, v)
			}
		}
	}

	out := make([]*core.Item, 0, len(acc))
	orderOf := make(map[string]int, len(acc))
	for sku, entry := range acc {
		if len(entry.sources) >= 2 {
			entry.item.Source = core.SourceHybrid
		} else {
			for s := range entry.sources {
				entry.item.Source = s
			}
		}
		entry.item.PutLabel("blend_sources", utils.Label{
			Value:  entry.item.Source,
			Source: "blend",
		})
		orderOf[sku] = entry.order
		out = append(out, entry.item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return orderOf[out[i].SKU] < orderOf[out[j].SKU]
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
