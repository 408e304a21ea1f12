package recall

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Source 表示一个可复用的召回源（内容/协同/热度/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"：引擎在混排前
// 并发执行多个 Source，再交给 rank.Blender 归一化加权合并。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
