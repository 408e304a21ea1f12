package engine

import (
	"context"
	"sort"
	"time"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// DefaultSessionWindow 会话内浏览记录的回看窗口。
const DefaultSessionWindow = 24 * time.Hour

// GetSessionBasedRecommendations 会话推荐入口：为匿名或登录用户的
// 当前会话生成"相关商品"。
//
// 候选来源：
//  1. 当前浏览商品（rctx.CurrentSKU）的相似商品
//  2. 会话内近期浏览过的商品各自的相似商品
//
// 同一 SKU 多路命中时保留最高分。无任何候选时回退热门榜。
// 会话推荐不做缓存：会话状态变化快，且结果本身计算量小（候选集受
// 同类目/同品牌约束）。
func (e *Engine) GetSessionBasedRecommendations(ctx context.Context, rctx *core.RecommendContext, limit int) ([]*core.Item, error) {
	if rctx == nil || rctx.SessionID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: session id is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seeds := e.sessionSeeds(ctx, rctx)

	similar := e.similarSource()
	seen := make(map[string]struct{}, len(seeds))
	best := make(map[string]*core.Item)
	var order []string

	for _, seed := range seeds {
		seen[seed] = struct{}{}
	}

	for _, seed := range seeds {
		items, err := similar.SimilarProducts(ctx, seed, limit)
		if err != nil {
			if e.failurePolicy() == FailurePolicyFail {
				return nil, err
			}
			continue
		}
		for _, it := range items {
			if _, ok := seen[it.SKU]; ok {
				continue
			}
			if old, ok := best[it.SKU]; ok {
				if it.Score > old.Score {
					it.PutLabel("session_seed", utils.Label{Value: seed, Source: "engine"})
					best[it.SKU] = it
				}
				continue
			}
			it.PutLabel("session_seed", utils.Label{Value: seed, Source: "engine"})
			best[it.SKU] = it
			order = append(order, it.SKU)
		}
	}

	if len(best) == 0 {
		// 会话无种子或相似召回为空：回退热门榜
		rctx.PutLabel("session_fallback", utils.Label{Value: "trending", Source: "engine"})
		return e.GetTrendingProducts(ctx, limit)
	}

	items := make([]*core.Item, 0, len(best))
	for _, sku := range order {
		items = append(items, best[sku])
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	items, err := e.postProcess(ctx, rctx, items, rctx.UserID != "", true)
	if err != nil {
		return nil, err
	}
	return truncate(items, limit), nil
}

// sessionSeeds 收集会话种子 SKU：当前商品优先，再补会话近期浏览。
// 浏览记录读取失败不阻断（按降级处理）。
func (e *Engine) sessionSeeds(ctx context.Context, rctx *core.RecommendContext) []string {
	var seeds []string
	dedup := make(map[string]struct{})

	if rctx.CurrentSKU != "" {
		seeds = append(seeds, rctx.CurrentSKU)
		dedup[rctx.CurrentSKU] = struct{}{}
	}

	since := time.Now().Add(-DefaultSessionWindow)
	recent, err := e.Interactions.RecentBySession(ctx, rctx.SessionID, since)
	if err != nil {
		return seeds
	}
	// 最近行为优先
	for i := len(recent) - 1; i >= 0; i-- {
		in := recent[i]
		if in.Type != core.InteractionView {
			continue
		}
		if _, ok := dedup[in.SKU]; ok {
			continue
		}
		dedup[in.SKU] = struct{}{}
		seeds = append(seeds, in.SKU)
	}
	return seeds
}
