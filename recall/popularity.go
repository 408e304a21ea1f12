package recall

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// DefaultPopularityWindow 是热度统计的时间窗口。
const DefaultPopularityWindow = 7 * 24 * time.Hour

// popularityTypes 是参与热度统计的行为类型。
var popularityTypes = []core.InteractionType{
	core.InteractionPurchase,
	core.InteractionCartAdd,
	core.InteractionView,
}

// Popularity 是平台热度召回源，冷启动兜底与 Trending 入口共用。
//
// 打分公式（近 Window 内，按 SKU 聚合）：
//
//	popularity = purchase_count*5 + view_count*1 + total_count
//
// 原始分 /100 做展示尺度归一化；只保留当前活跃商品。
type Popularity struct {
	Interactions core.InteractionStore
	Products     core.ProductStore

	// TopK 返回 TopK 个商品，<=0 时默认 20
	TopK int

	// Window 统计窗口，0 时使用 DefaultPopularityWindow（7 天）
	Window time.Duration

	// Trending 为 true 时来源标记为 trending（独立 Trending 入口使用）
	Trending bool
}

func (r *Popularity) Name() string {
	if r.Trending {
		return "recall.trending"
	}
	return "recall.popularity"
}

func (r *Popularity) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}
	return r.Top(ctx, topK)
}

// Top 返回热度最高的 limit 个活跃商品。
func (r *Popularity) Top(ctx context.Context, limit int) ([]*core.Item, error) {
	window := r.Window
	if window <= 0 {
		window = DefaultPopularityWindow
	}

	rows, err := r.Interactions.AggregatePopularity(ctx, time.Now().Add(-window), popularityTypes)
	if err != nil {
		return nil, fmt.Errorf("popularity recall: aggregate: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	skus := make([]string, 0, len(rows))
	for _, row := range rows {
		skus = append(skus, row.SKU)
	}
	products, err := r.Products.FindActiveBySKUSet(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("popularity recall: products: %w", err)
	}
	active := make(map[string]*core.Product, len(products))
	for _, p := range products {
		active[p.SKU] = p
	}

	source := core.SourcePopularity
	if r.Trending {
		source = core.SourceTrending
	}

	out := make([]*core.Item, 0, len(rows))
	for _, row := range rows {
		p, ok := active[row.SKU]
		if !ok {
			continue
		}
		raw := float64(row.PurchaseCount*5 + row.ViewCount + row.TotalCount)

		it := core.NewItem(row.SKU)
		it.Score = raw / 100 // 展示尺度归一化
		it.Source = source
		it.Meta["category"] = p.Category
		it.Meta["brand"] = p.Brand
		it.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
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
