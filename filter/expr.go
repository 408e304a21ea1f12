package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/dsl"
)

// Expr 是规则表达式过滤器：表达式为 true 的商品被过滤。
// 运营规则不改代码、只改配置即可生效，配合 config 包从 YAML 构建。
//
// 示例：
//   - `item.meta.category == "refurbished"` 剔除翻新类目
//   - `item.score < 0.05` 剔除长尾低分
//   - `label.recall_source == "popularity" && item.score < 0.1`
type Expr struct {
	// Expression CEL 表达式，空表达式不过滤任何商品
	Expression string
}

func (f *Expr) Name() string { return "filter.expr" }

func (f *Expr) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expression == "" || item == nil {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expression)
}
