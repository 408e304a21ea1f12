package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/pkg/utils"
)

// DefaultDiversityFactor 是默认的多样性因子。
const DefaultDiversityFactor = 0.3

// Diversity 是多样性重排 Node：惩罚榜单里重复出现的类目/品牌。
//
// 单次贪心左到右扫描（刻意保持有界复杂度，不做全局最优重排）：
//   - 类目此前已出现：score *= (1 - d)
//   - 品牌此前已出现：再乘 (1 - d*0.5)，品牌惩罚取半权
//
// 两个惩罚乘法叠加，之后按调整分稳定重排（平分保持原序）。
// 类目/品牌从 item.Meta 读取（引擎在重排前已从目录补齐）。
type Diversity struct {
	// Factor 多样性因子 d ∈ [0,1]，0 时使用 DefaultDiversityFactor。
	// 请求级覆盖：rctx.Params["diversity_factor"]。
	Factor float64
}

func (n *Diversity) Name() string { return "rerank.diversity" }

func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	d := n.Factor
	if d == 0 {
		d = DefaultDiversityFactor
	}
	if rctx != nil {
		d = conv.ConfigGetFloat64(rctx.Params, "diversity_factor", d)
	}
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}

	seenCategory := make(map[string]bool, len(items))
	seenBrand := make(map[string]bool, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		category := it.MetaString("category")
		brand := it.MetaString("brand")

		penalized := false
		if category != "" && seenCategory[category] {
			it.Score *= 1 - d
			penalized = true
		}
		if brand != "" && seenBrand[brand] {
			it.Score *= 1 - d*0.5
			penalized = true
		}
		if penalized {
			it.PutLabel("diversity_penalized", utils.Label{Value: "true", Source: "rerank"})
		}

		if category != "" {
			seenCategory[category] = true
		}
		if brand != "" {
			seenBrand[brand] = true
		}
	}

	out := make([]*core.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
