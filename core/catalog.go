package core

import (
	"context"
	"time"
)

// ProductStore 是商品目录的只读领域接口。
// 目录由外部服务维护，推荐侧只查询；不活跃商品对推荐不可见。
type ProductStore interface {
	// FindActiveBySKU 按 SKU 查询活跃商品；不存在或不活跃返回 (nil, nil)
	FindActiveBySKU(ctx context.Context, sku string) (*Product, error)

	// FindActiveBySKUSet 批量查询活跃商品，结果不保证与输入同序
	FindActiveBySKUSet(ctx context.Context, skus []string) ([]*Product, error)

	// FindActiveByCategoryOrBrand 查询同类目或同品牌的活跃商品，排除 excludeSKU。
	// 用于相似商品召回的候选集约束（控制打分成本）。
	FindActiveByCategoryOrBrand(ctx context.Context, category, brand, excludeSKU string) ([]*Product, error)

	// ListActive 列出全部活跃商品（词表构建与全量内容打分使用）
	ListActive(ctx context.Context) ([]*Product, error)
}

// PopularityRow 是热度聚合的一行：按 SKU 统计的各类行为次数。
type PopularityRow struct {
	SKU           string
	PurchaseCount int
	ViewCount     int
	TotalCount    int
}

// InteractionStore 是用户行为存储的领域接口。
// 行为只追加；推荐侧既写入（RecordInteraction 入口）也查询。
type InteractionStore interface {
	// Record 追加一条行为记录
	Record(ctx context.Context, in *Interaction) error

	// CountByUser 返回该用户的行为总数（分层选择使用）
	CountByUser(ctx context.Context, userID string) (int, error)

	// RecentByUser 返回该用户 since 之后的行为
	RecentByUser(ctx context.Context, userID string, since time.Time) ([]*Interaction, error)

	// RecentBySession 返回该会话 since 之后的行为
	RecentBySession(ctx context.Context, sessionID string, since time.Time) ([]*Interaction, error)

	// AggregatePopularity 按 SKU 聚合 since 之后、types 范围内的行为计数
	AggregatePopularity(ctx context.Context, since time.Time, types []InteractionType) ([]*PopularityRow, error)
}
