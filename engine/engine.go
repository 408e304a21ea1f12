package engine

import (
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/recall"
)

// 分层阈值：按用户历史行为数选择推荐策略。
const (
	// ColdStartThreshold 行为数低于此值走冷启动（纯热度）
	ColdStartThreshold = 5

	// WarmStartThreshold 行为数低于此值走温启动（降权混合）
	WarmStartThreshold = 20
)

// 默认混合权重与缓存 TTL。
const (
	DefaultContentWeight       = 0.4
	DefaultCollaborativeWeight = 0.4
	DefaultPopularityWeight    = 0.2

	// DefaultCacheTTL 个性化推荐缓存 TTL（秒）
	DefaultCacheTTL = 3600

	// DefaultTrendingTTL 热门榜缓存 TTL（秒）
	DefaultTrendingTTL = 1800
)

// 召回源失败处理策略。
const (
	// FailurePolicyDegrade 单源失败时降级：该源贡献空列表，其余源继续
	FailurePolicyDegrade = "degrade"

	// FailurePolicyFail 单源失败时整个请求报错
	FailurePolicyFail = "fail"
)

// Engine 是推荐引擎门面：组合召回、混排、重排与缓存，
// 对外暴露个性化 / 热门 / 会话三类推荐入口及行为写入口。
//
// 零值不可用：Products / Interactions / Profile / Extractor 必须注入；
// Collaborative / Cache 可选，缺省时对应能力自动关闭。
type Engine struct {
	Products     core.ProductStore
	Interactions core.InteractionStore

	// Profile 画像向量提供者（实时构建或 Feast 物化服务）
	Profile feature.ProfileProvider

	// Extractor 商品特征抽取器（与画像使用同一词表）
	Extractor *feature.Extractor

	// Collaborative 协同召回提供者，可为 nil（纯内容+热度模式）
	Collaborative core.CollaborativeProvider

	// Cache 结果缓存，可为 nil（每次实时计算）
	Cache core.Store

	// ContentWeight 内容召回权重，0 时取 DefaultContentWeight
	ContentWeight float64

	// CollaborativeWeight 协同召回权重，0 时取 DefaultCollaborativeWeight
	CollaborativeWeight float64

	// PopularityWeight 热度召回权重，0 时取 DefaultPopularityWeight
	PopularityWeight float64

	// DiversityFactor 多样性因子，0 时取 rerank.DefaultDiversityFactor
	DiversityFactor float64

	// CacheTTL 个性化缓存 TTL 秒数，0 时取 DefaultCacheTTL
	CacheTTL int

	// TrendingTTL 热门榜缓存 TTL 秒数，0 时取 DefaultTrendingTTL
	TrendingTTL int

	// FailurePolicy 召回源失败策略（degrade/fail），空时为 degrade
	FailurePolicy string

	// PostNodes 追加在默认后处理（过滤+多样性重排）之后的自定义节点，
	// 由 pipeline 配置构建或手工注入
	PostNodes []pipeline.Node
}

func (e *Engine) contentWeight() float64 {
	if e.ContentWeight > 0 {
		return e.ContentWeight
	}
	return DefaultContentWeight
}

func (e *Engine) collaborativeWeight() float64 {
	if e.CollaborativeWeight > 0 {
		return e.CollaborativeWeight
	}
	return DefaultCollaborativeWeight
}

func (e *Engine) popularityWeight() float64 {
	if e.PopularityWeight > 0 {
		return e.PopularityWeight
	}
	return DefaultPopularityWeight
}

func (e *Engine) failurePolicy() string {
	if e.FailurePolicy == FailurePolicyFail {
		return FailurePolicyFail
	}
	return FailurePolicyDegrade
}

func (e *Engine) cacheTTL() int {
	if e.CacheTTL > 0 {
		return e.CacheTTL
	}
	return DefaultCacheTTL
}

func (e *Engine) trendingTTL() int {
	if e.TrendingTTL > 0 {
		return e.TrendingTTL
	}
	return DefaultTrendingTTL
}

// contentSource 构建内容召回源（请求级，轻量结构体）。
func (e *Engine) contentSource() *recall.Content {
	return &recall.Content{
		Products:     e.Products,
		Interactions: e.Interactions,
		Profile:      e.Profile,
		Extractor:    e.Extractor,
	}
}

func (e *Engine) popularitySource() *recall.Popularity {
	return &recall.Popularity{
		Interactions: e.Interactions,
		Products:     e.Products,
	}
}

func (e *Engine) trendingSource() *recall.Popularity {
	return &recall.Popularity{
		Interactions: e.Interactions,
		Products:     e.Products,
		Trending:     true,
	}
}

func (e *Engine) similarSource() *recall.Similar {
	return &recall.Similar{
		Products:  e.Products,
		Extractor: e.Extractor,
	}
}
