package filter

import (
	"context"
	"sync"
	"time"

	"github.com/rushteam/shoprec/core"
)

// Interacted 过滤用户已经交互过的商品。
//
// 内容召回在打分时已排除交互过的商品，但协同召回的外部结果可能
// 回流用户历史，混排后在这里兜底剔除。
// 交互集合按 (userID, 请求) 粒度惰性加载并缓存在过滤器实例内，
// 一次请求内多次 ShouldFilter 只查一次存储。
type Interacted struct {
	Interactions core.InteractionStore

	// Window 交互排除窗口，<=0 时默认 60 天
	Window time.Duration

	mu     sync.Mutex
	userID string
	seen   map[string]struct{}
}

func (f *Interacted) Name() string { return "filter.interacted" }

func (f *Interacted) ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	if f.Interactions == nil || rctx == nil || rctx.UserID == "" || item == nil {
		return false, nil
	}

	seen, err := f.interactedSet(ctx, rctx.UserID)
	if err != nil {
		return false, err
	}
	_, ok := seen[item.SKU]
	return ok, nil
}

func (f *Interacted) interactedSet(ctx context.Context, userID string) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.userID == userID && f.seen != nil {
		return f.seen, nil
	}

	window := f.Window
	if window <= 0 {
		window = 60 * 24 * time.Hour
	}
	interactions, err := f.Interactions.RecentByUser(ctx, userID, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(interactions))
	for _, in := range interactions {
		seen[in.SKU] = struct{}{}
	}
	f.userID = userID
	f.seen = seen
	return seen, nil
}
