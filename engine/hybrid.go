package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/utils"
	"github.com/rushteam/shoprec/rank"
	"github.com/rushteam/shoprec/recall"
	"github.com/rushteam/shoprec/rerank"
)

// DefaultLimit 推荐入口的默认返回条数。
const DefaultLimit = 10

// sourceTask 是一次混合召回中的单个带权召回任务。
type sourceTask struct {
	name   string
	weight float64
	run    func(ctx context.Context) ([]*core.Item, error)
}

// GetHybridRecommendations 个性化推荐入口。
//
// 流程：
//  1. 查缓存，命中直接返回（截断到 limit）
//  2. 按用户行为数分层：冷启动（<5）直接返回热度榜结果；
//     温启动（<20）降权混合；完整混合（>=20）内容+协同+热度并发召回
//  3. rank.Blender 归一化加权混排（冷启动跳过：热度分数保持展示尺度）
//  4. 后处理管道：已交互过滤 → 多样性重排（仅混排路径）→ 自定义节点
//  5. 全量列表写缓存后截断返回
func (e *Engine) GetHybridRecommendations(ctx context.Context, rctx *core.RecommendContext, limit int) ([]*core.Item, error) {
	if rctx == nil || rctx.UserID == "" {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: user id is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := userCacheKey(rctx.UserID, rctx.Scene, limit)
	if cached, ok := e.cacheGet(ctx, key); ok {
		return truncate(cached, limit), nil
	}

	count, err := e.Interactions.CountByUser(ctx, rctx.UserID)
	if err != nil {
		return nil, fmt.Errorf("engine: count interactions: %w", err)
	}

	var items []*core.Item
	switch {
	case count < ColdStartThreshold:
		rctx.PutLabel("tier", utils.Label{Value: "cold", Source: "engine"})
		items, err = e.coldRecommend(ctx, rctx)
	case count < WarmStartThreshold:
		rctx.PutLabel("tier", utils.Label{Value: "warm", Source: "engine"})
		items, err = e.blendRecommend(ctx, rctx, e.warmTasks(rctx, limit))
	default:
		rctx.PutLabel("tier", utils.Label{Value: "full", Source: "engine"})
		items, err = e.blendRecommend(ctx, rctx, e.fullTasks(rctx, limit))
	}
	if err != nil {
		return nil, err
	}

	e.cacheSet(ctx, key, items, e.cacheTTL())
	return truncate(items, limit), nil
}

// coldRecommend 冷启动：直接返回热度榜结果（分数保持热度展示尺度，
// 不经过混排归一化），只做已交互过滤与自定义节点。
func (e *Engine) coldRecommend(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	items, err := e.popularitySource().Top(ctx, 0)
	if err != nil {
		if e.failurePolicy() == FailurePolicyFail {
			return nil, fmt.Errorf("engine: recall popularity: %w", err)
		}
		rctx.PutLabel("degraded_sources", utils.Label{Value: "popularity", Source: "engine"})
		return nil, nil
	}
	return e.postProcess(ctx, rctx, items, true, false)
}

// blendRecommend 温启动/完整混合：并发召回 → 混排 → 补齐 → 后处理。
func (e *Engine) blendRecommend(ctx context.Context, rctx *core.RecommendContext, tasks []sourceTask) ([]*core.Item, error) {
	lists, err := e.gather(ctx, rctx, tasks)
	if err != nil {
		return nil, err
	}

	blender := &rank.Blender{}
	items := blender.Blend(lists, 0)

	items, err = e.enrich(ctx, items)
	if err != nil {
		return nil, err
	}
	return e.postProcess(ctx, rctx, items, true, true)
}

// warmTasks 温启动：个性化信号弱，内容召回为主、协同降权、热度保底。
func (e *Engine) warmTasks(rctx *core.RecommendContext, limit int) []sourceTask {
	content := e.contentSource()
	popularity := e.popularitySource()
	userID := rctx.UserID

	tasks := []sourceTask{
		{
			name:   "content",
			weight: 0.5,
			run: func(ctx context.Context) ([]*core.Item, error) {
				return content.RecommendForUser(ctx, userID, scaled(limit, 70))
			},
		},
		{
			name:   "popularity",
			weight: 0.2,
			run: func(ctx context.Context) ([]*core.Item, error) {
				return popularity.Top(ctx, scaled(limit, 20))
			},
		},
	}
	if e.Collaborative != nil {
		u2i := &recall.UserCF{Provider: e.Collaborative, TopK: scaled(limit, 30)}
		tasks = append(tasks, sourceTask{
			name:   "collaborative",
			weight: 0.3,
			run: func(ctx context.Context) ([]*core.Item, error) {
				return u2i.Recall(ctx, rctx)
			},
		})
	}
	return tasks
}

// fullTasks 完整混合：内容 + u2i + i2i + 热度并发召回。
// 协同总权重在 u2i/i2i 间按 0.6/0.4 拆分。
func (e *Engine) fullTasks(rctx *core.RecommendContext, limit int) []sourceTask {
	content := e.contentSource()
	popularity := e.popularitySource()
	userID := rctx.UserID

	tasks := []sourceTask{
		{
			name:   "content",
			weight: e.contentWeight(),
			run: func(ctx context.Context) ([]*core.Item, error) {
				return content.RecommendForUser(ctx, userID, limit)
			},
		},
		{
			name:   "popularity",
			weight: e.popularityWeight(),
			run: func(ctx context.Context) ([]*core.Item, error) {
				return popularity.Top(ctx, scaled(limit, 30))
			},
		},
	}
	if e.Collaborative != nil {
		collabWeight := e.collaborativeWeight()
		u2i := &recall.UserCF{Provider: e.Collaborative, TopK: limit}
		i2i := &recall.ItemCF{Provider: e.Collaborative, TopK: limit}
		tasks = append(tasks,
			sourceTask{
				name:   "collaborative",
				weight: collabWeight * 0.6,
				run: func(ctx context.Context) ([]*core.Item, error) {
					return u2i.Recall(ctx, rctx)
				},
			},
			sourceTask{
				name:   "collaborative",
				weight: collabWeight * 0.4,
				run: func(ctx context.Context) ([]*core.Item, error) {
					return i2i.Recall(ctx, rctx)
				},
			},
		)
	}
	return tasks
}

// gather 并发执行召回任务。失败策略：
//   - degrade：失败源贡献空列表，rctx 打 degraded_sources 标签
//   - fail：任一源失败则整个请求报错
func (e *Engine) gather(ctx context.Context, rctx *core.RecommendContext, tasks []sourceTask) ([]rank.WeightedList, error) {
	lists := make([]rank.WeightedList, len(tasks))
	degraded := make([]string, len(tasks))
	failFast := e.failurePolicy() == FailurePolicyFail

	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			items, err := task.run(gctx)
			if err != nil {
				if failFast {
					return fmt.Errorf("engine: recall %s: %w", task.name, err)
				}
				degraded[i] = task.name
				items = nil
			}
			lists[i] = rank.WeightedList{
				Items:  items,
				Weight: task.weight,
				Source: task.name,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, name := range degraded {
		if name != "" {
			rctx.PutLabel("degraded_sources", utils.Label{Value: name, Source: "engine"})
		}
	}
	return lists, nil
}

// enrich 用目录补齐缺失的 Meta（协同召回只有 SKU），
// 并剔除目录中已不存在或不活跃的候选。
func (e *Engine) enrich(ctx context.Context, items []*core.Item) ([]*core.Item, error) {
	var missing []string
	for _, it := range items {
		if it.MetaString("category") == "" {
			missing = append(missing, it.SKU)
		}
	}
	if len(missing) == 0 {
		return items, nil
	}

	products, err := e.Products.FindActiveBySKUSet(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("engine: enrich items: %w", err)
	}
	bySKU := make(map[string]*core.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it.MetaString("category") != "" {
			out = append(out, it)
			continue
		}
		p, ok := bySKU[it.SKU]
		if !ok {
			continue
		}
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		it.Meta["category"] = p.Category
		it.Meta["brand"] = p.Brand
		out = append(out, it)
	}
	return out, nil
}

// postProcess 运行后处理管道。excludeInteracted 控制是否挂已交互过滤
// （个性化入口开启）；diversify 控制是否挂多样性重排（只作用于
// 混排之后的榜单，冷启动热度结果保持原排序）。
func (e *Engine) postProcess(ctx context.Context, rctx *core.RecommendContext, items []*core.Item, excludeInteracted, diversify bool) ([]*core.Item, error) {
	var nodes []pipeline.Node
	if excludeInteracted {
		nodes = append(nodes, &filter.Node{
			Filters: []filter.Filter{
				&filter.Interacted{Interactions: e.Interactions},
			},
		})
	}
	if diversify {
		nodes = append(nodes, &rerank.Diversity{Factor: e.DiversityFactor})
	}
	nodes = append(nodes, e.PostNodes...)

	p := &pipeline.Pipeline{Nodes: nodes}
	return p.Run(ctx, rctx, items)
}

// scaled 按百分比缩放 limit，至少为 1。
func scaled(limit, pct int) int {
	n := limit * pct / 100
	if n < 1 {
		n = 1
	}
	return n
}

func truncate(items []*core.Item, limit int) []*core.Item {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
