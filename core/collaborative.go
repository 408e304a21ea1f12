package core

import "context"

// ScoredSKU 是协同召回返回的一条打分结果。
type ScoredSKU struct {
	SKU   string
	Score float64
}

// CollaborativeProvider 是协同过滤召回的领域接口，由外部组件实现
// （矩阵分解、交互矩阵 k-NN 等均可，本库不关心具体算法）。
//
// 契约：
//   - 分数非负，且只在同一次调用的结果集内可比
//   - 跨调用不保证同尺度，混排前必须按来源独立归一化（见 rank.Blender）
type CollaborativeProvider interface {
	// UserBased 基于相似用户的召回（u2i）
	UserBased(ctx context.Context, userID string, limit int) ([]ScoredSKU, error)

	// ItemBased 基于相似物品的召回（i2i）
	ItemBased(ctx context.Context, userID string, limit int) ([]ScoredSKU, error)
}
