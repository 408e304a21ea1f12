package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/pkg/utils"
)

// DefaultSimilarMinScore 是商品→商品相似召回的分数阈值。
// 比面向用户的召回更严：相似商品用于精确替换而非泛化发现。
const DefaultSimilarMinScore = 0.2

// Similar 是商品到商品的内容相似召回源。
// 候选集约束为同类目或同品牌（控制打分成本），再按余弦相似度排序。
type Similar struct {
	Products  core.ProductStore
	Extractor *feature.Extractor

	// TopK 返回 TopK 个商品，<=0 时默认 20
	TopK int

	// MinScore 相似度阈值，0 时使用 DefaultSimilarMinScore
	MinScore float64
}

func (r *Similar) Name() string { return "recall.similar" }

// SimilarProducts 返回与参照商品相似的商品列表。
// 参照商品不存在或不活跃时返回空结果（不是错误）。
func (r *Similar) SimilarProducts(ctx context.Context, sku string, limit int) ([]*core.Item, error) {
	ref, err := r.Products.FindActiveBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("similar recall: find reference: %w", err)
	}
	if ref == nil {
		return nil, nil
	}

	refVec, err := r.Extractor.Extract(ref)
	if err != nil {
		return nil, err
	}

	candidates, err := r.Products.FindActiveByCategoryOrBrand(ctx, ref.Category, ref.Brand, ref.SKU)
	if err != nil {
		return nil, fmt.Errorf("similar recall: candidates: %w", err)
	}

	minScore := r.MinScore
	if minScore == 0 {
		minScore = DefaultSimilarMinScore
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, p := range candidates {
		if p == nil || p.SKU == ref.SKU {
			continue
		}
		vec, err := r.Extractor.Extract(p)
		if err != nil {
			return nil, err
		}
		score := feature.Cosine(refVec, vec)
		if score <= minScore {
			continue
		}

		it := core.NewItem(p.SKU)
		it.Score = score
		it.Source = core.SourceContent
		it.Meta["category"] = p.Category
		it.Meta["brand"] = p.Brand
		it.PutLabel("recall_source", utils.Label{Value: "similar", Source: "recall"})
		it.PutLabel("similar_to", utils.Label{Value: ref.SKU, Source: "recall"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	topK := limit
	if topK <= 0 {
		topK = r.TopK
	}
	if topK <= 0 {
		topK = 20
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}
