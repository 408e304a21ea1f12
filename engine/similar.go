package engine

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// GetSimilarProducts 相似商品入口（商品详情页"相关推荐"）。
// 参照商品不存在或不活跃时返回空列表。不做缓存：候选集受
// 同类目/同品牌约束，实时计算成本可控。
func (e *Engine) GetSimilarProducts(ctx context.Context, sku string, limit int) ([]*core.Item, error) {
	if sku == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: sku is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return e.similarSource().SimilarProducts(ctx, sku, limit)
}
