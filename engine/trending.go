package engine

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// GetTrendingProducts 热门商品入口：近 7 天热度榜，全站共享缓存。
// 直接返回热度排序结果，不做个性化过滤，也不做多样性重排
// （多样性重排只作用于混排之后的个性化榜单）。
func (e *Engine) GetTrendingProducts(ctx context.Context, limit int) ([]*core.Item, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := trendingCacheKey(limit)
	if cached, ok := e.cacheGet(ctx, key); ok {
		return truncate(cached, limit), nil
	}

	items, err := e.trendingSource().Top(ctx, limit)
	if err != nil {
		return nil, err
	}

	e.cacheSet(ctx, key, items, e.trendingTTL())
	return truncate(items, limit), nil
}
