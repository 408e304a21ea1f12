package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/utils"
)

// 缓存 key 约定：
//
//	rec:user:<userID>:<scene>:<limit>  个性化推荐
//	rec:trending:<limit>               热门榜
//
// 用户产生新交互时按前缀 rec:user:<userID>: 粗粒度清除，
// 宁可重算也不返回过期列表。
func userCacheKey(userID, scene string, limit int) string {
	if scene == "" {
		scene = "default"
	}
	return fmt.Sprintf("rec:user:%s:%s:%d", userID, scene, limit)
}

func userCachePrefix(userID string) string {
	return fmt.Sprintf("rec:user:%s:", userID)
}

func trendingCacheKey(limit int) string {
	return fmt.Sprintf("rec:trending:%d", limit)
}

// cachedItem 是缓存中的一条结果。Labels 不入缓存：
// 解释标签描述的是单次计算过程，命中时统一打 cache=hit。
type cachedItem struct {
	SKU    string         `json:"sku"`
	Score  float64        `json:"score"`
	Source string         `json:"source"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// cacheGet 读取缓存列表。未命中或任何错误均返回 (nil, false)，
// 缓存故障不影响主链路。
func (e *Engine) cacheGet(ctx context.Context, key string) ([]*core.Item, bool) {
	if e.Cache == nil {
		return nil, false
	}
	data, err := e.Cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var rows []cachedItem
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	items := make([]*core.Item, 0, len(rows))
	for _, row := range rows {
		it := core.NewItem(row.SKU)
		it.Score = row.Score
		it.Source = row.Source
		if row.Meta != nil {
			it.Meta = row.Meta
		}
		it.PutLabel("cache", utils.Label{Value: "hit", Source: "engine"})
		items = append(items, it)
	}
	return items, true
}

// cacheSet 写入缓存列表，失败静默忽略。
func (e *Engine) cacheSet(ctx context.Context, key string, items []*core.Item, ttl int) {
	if e.Cache == nil {
		return
	}
	rows := make([]cachedItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, cachedItem{
			SKU:    it.SKU,
			Score:  it.Score,
			Source: it.Source,
			Meta:   it.Meta,
		})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	_ = e.Cache.Set(ctx, key, data, ttl)
}
