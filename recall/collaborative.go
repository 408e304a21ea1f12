package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// UserCF 包装外部协同召回的 u2i 结果为召回源。
//
// 协同过滤的具体算法在本库之外（见 core.CollaborativeProvider 契约）；
// 这里只做结果到 Item 的适配与来源打标。分数只在单次调用内可比，
// 混排前由 rank.Blender 独立归一化。
type UserCF struct {
	Provider core.CollaborativeProvider

	// TopK 返回 TopK 个商品，<=0 时默认 20
	TopK int
}

func (r *UserCF) Name() string { return "recall.u2i" }

func (r *UserCF) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if r.Provider == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	scored, err := r.Provider.UserBased(ctx, rctx.UserID, topK)
	if err != nil {
		return nil, err
	}
	return collabItems(scored, "u2i"), nil
}

// ItemCF 包装外部协同召回的 i2i 结果为召回源。
type ItemCF struct {
	Provider core.CollaborativeProvider

	// TopK 返回 TopK 个商品，<=0 时默认 20
	TopK int
}

func (r *ItemCF) Name() string { return "recall.i2i" }

func (r *ItemCF) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if r.Provider == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	scored, err := r.Provider.ItemBased(ctx, rctx.UserID, topK)
	if err != nil {
		return nil, err
	}
	return collabItems(scored, "i2i"), nil
}

func collabItems(scored []core.ScoredSKU, kind string) []*core.Item {
	out := make([]*core.Item, 0, len(scored))
	for _, s := range scored {
		if s.SKU == "" {
			continue
		}
		it := core.NewItem(s.SKU)
		it.Score = s.Score
		it.Source = core.SourceCollaborative
		it.PutLabel("recall_source", utils.Label{Value: kind, Source: "recall"})
		out = append(out, it)
	}
	return out
}
