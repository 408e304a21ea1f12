package rerank

import (
	"context"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// TopN 是一个 Top-N 截断 Node，用于在重排后截取前 N 个商品。
//
// 使用场景：
//   - 多样性重排后只返回调用方要求的条数
//   - 控制返回结果数量
//
// 注意：引擎在截断前整单缓存，命中不同 limit 时直接复用缓存截断。
type TopN struct {
	// N 要保留的商品数量（Top N）
	// 如果 N <= 0，则返回所有商品（不截断）
	N int
}

func (n *TopN) Name() string { return "rerank.topn" }

func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
