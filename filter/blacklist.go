package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/shoprec/core"
)

// Blacklist 是黑名单过滤器，过滤掉黑名单中的 SKU。
// 运营下架、合规剔除等场景使用。
type Blacklist struct {
	// SKUs 是内存中的黑名单 SKU 列表
	SKUs []string

	// Store 用于从存储中读取黑名单（可选），value 为 JSON 字符串数组
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

func (f *Blacklist) Name() string { return "filter.blacklist" }

func (f *Blacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, sku := range f.SKUs {
		if item.SKU == sku {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err == nil {
			var blocked []string
			if json.Unmarshal(data, &blocked) == nil {
				for _, sku := range blocked {
					if item.SKU == sku {
						return true, nil
					}
				}
			}
		}
	}

	return false, nil
}
