package builders

import (
	"github.com/rushteam/shoprec/config"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/conv"
	"github.com/rushteam/shoprec/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("filter.expr", BuildExprFilterNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildFilterNode 构建黑名单过滤 Node。
// 配置：blacklist: [sku1, sku2, ...]；expr: CEL 表达式（可选）。
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filters := make([]filter.Filter, 0, 2)

	if skus := conv.SliceAnyToString(cfg["blacklist"]); len(skus) > 0 {
		filters = append(filters, &filter.Blacklist{SKUs: skus})
	}
	if expr := conv.ConfigGet(cfg, "expr", ""); expr != "" {
		filters = append(filters, &filter.Expr{Expression: expr})
	}

	return &filter.Node{Filters: filters}, nil
}

// BuildExprFilterNode 构建单条规则表达式过滤 Node。
// 配置：expr: CEL 表达式。
func BuildExprFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	return &filter.Node{Filters: []filter.Filter{&filter.Expr{Expression: expr}}}, nil
}

// BuildDiversityNode 构建多样性重排 Node。
// 配置：factor: 多样性因子（默认 0.3）。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Diversity{
		Factor: conv.ConfigGetFloat64(cfg, "factor", rerank.DefaultDiversityFactor),
	}, nil
}

// BuildTopNNode 构建 Top-N 截断 Node。
// 配置：n: 保留条数。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
