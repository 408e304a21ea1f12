package recall

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/pkg/utils"
)

// DefaultContentMinScore 是面向用户的内容召回分数阈值。
// 宽松阈值服务于泛化发现；相似商品替换场景用更严的 DefaultSimilarMinScore。
const DefaultContentMinScore = 0.1

// Content 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："用户喜欢具有某些特征的商品，推荐具有相似特征的其他商品"
//
// 流程：
//  1. 取用户画像向量（ProfileProvider）
//  2. 对每个未交互过的活跃商品计算余弦相似度
//  3. 保留 score > MinScore，降序截断
//
// 画像为空时返回空结果（调用方回退热度召回，不是错误）。
type Content struct {
	Products     core.ProductStore
	Interactions core.InteractionStore
	Profile      feature.ProfileProvider
	Extractor    *feature.Extractor

	// TopK 返回 TopK 个商品，<=0 时默认 20
	TopK int

	// MinScore 相似度阈值，0 时使用 DefaultContentMinScore
	MinScore float64

	// ExcludeWindow 已交互排除窗口，0 时与画像窗口一致（60 天）
	ExcludeWindow time.Duration
}

func (r *Content) Name() string { return "recall.content" }

func (r *Content) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	return r.RecommendForUser(ctx, rctx.UserID, topK)
}

// RecommendForUser 对指定用户做全目录内容打分。
func (r *Content) RecommendForUser(ctx context.Context, userID string, limit int) ([]*core.Item, error) {
	profile, err := r.Profile.ProfileVector(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Empty() {
		return nil, nil
	}

	window := r.ExcludeWindow
	if window <= 0 {
		window = feature.DefaultProfileWindow
	}
	recent, err := r.Interactions.RecentByUser(ctx, userID, time.Now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("content recall: interactions: %w", err)
	}
	interacted := make(map[string]struct{}, len(recent))
	for _, in := range recent {
		interacted[in.SKU] = struct{}{}
	}

	candidates, err := r.Products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("content recall: list products: %w", err)
	}

	minScore := r.MinScore
	if minScore == 0 {
		minScore = DefaultContentMinScore
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, p := range candidates {
		if p == nil {
			continue
		}
		if _, ok := interacted[p.SKU]; ok {
			continue
		}
		vec, err := r.Extractor.Extract(p)
		if err != nil {
			return nil, err
		}
		score := feature.Cosine(profile, vec)
		if score <= minScore {
			continue
		}

		it := core.NewItem(p.SKU)
		it.Score = score
		it.Source = core.SourceContent
		it.Meta["category"] = p.Category
		it.Meta["brand"] = p.Brand
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
