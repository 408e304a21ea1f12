package engine

import (
	"context"
	"fmt"

	"github.com/rushteam/shoprec/core"
)

// RecordInteraction 写入一条用户行为，并粗粒度清除该用户的个性化缓存
// （删除前缀 rec:user:<userID>: 下全部 key）。
//
// 缓存清除失败不影响写入结果：行为已落库，缓存最迟在 TTL 到期后自愈。
func (e *Engine) RecordInteraction(ctx context.Context, in *core.Interaction) error {
	if err := e.Interactions.Record(ctx, in); err != nil {
		return fmt.Errorf("engine: record interaction: %w", err)
	}
	if e.Cache != nil && in.UserID != "" {
		_ = e.Cache.DeleteByPrefix(ctx, userCachePrefix(in.UserID))
	}
	return nil
}
