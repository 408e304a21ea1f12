package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rushteam/shoprec/core"
)

// MemoryCatalog 是内存实现的商品目录 + 行为存储，用于测试/开发/原型。
// 同时实现 core.ProductStore 与 core.InteractionStore；生产环境由外部
// 目录/行为服务提供这两个接口的实现。
type MemoryCatalog struct {
	mu           sync.RWMutex
	products     map[string]*core.Product
	interactions []*core.Interaction
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		products: make(map[string]*core.Product),
	}
}

// PutProduct 写入/覆盖一个商品（模拟外部目录进程）。
func (c *MemoryCatalog) PutProduct(p *core.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.SKU] = p
}

func (c *MemoryCatalog) FindActiveBySKU(_ context.Context, sku string) (*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[sku]
	if !ok || !p.Active {
		return nil, nil
	}
	return p, nil
}

func (c *MemoryCatalog) FindActiveBySKUSet(_ context.Context, skus []string) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Product, 0, len(skus))
	for _, sku := range skus {
		if p, ok := c.products[sku]; ok && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) FindActiveByCategoryOrBrand(_ context.Context, category, brand, excludeSKU string) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Product, 0)
	for _, p := range c.products {
		if !p.Active || p.SKU == excludeSKU {
			continue
		}
		if (category != "" && p.Category == category) || (brand != "" && p.Brand == brand) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (c *MemoryCatalog) ListActive(_ context.Context) ([]*core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// Record 追加一条行为记录；ID 为空时由存储生成。
func (c *MemoryCatalog) Record(_ context.Context, in *core.Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *in
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	c.interactions = append(c.interactions, &stored)
	return nil
}

func (c *MemoryCatalog) CountByUser(_ context.Context, userID string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, in := range c.interactions {
		if in.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (c *MemoryCatalog) RecentByUser(_ context.Context, userID string, since time.Time) ([]*core.Interaction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Interaction, 0)
	for _, in := range c.interactions {
		if in.UserID == userID && !in.Timestamp.Before(since) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) RecentBySession(_ context.Context, sessionID string, since time.Time) ([]*core.Interaction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*core.Interaction, 0)
	for _, in := range c.interactions {
		if in.SessionID == sessionID && !in.Timestamp.Before(since) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) AggregatePopularity(_ context.Context, since time.Time, types []core.InteractionType) ([]*core.PopularityRow, error) {
	typeSet := make(map[core.InteractionType]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	rows := make(map[string]*core.PopularityRow)
	for _, in := range c.interactions {
		if in.Timestamp.Before(since) {
			continue
		}
		if len(typeSet) > 0 {
			if _, ok := typeSet[in.Type]; !ok {
				continue
			}
		}

		row, ok := rows[in.SKU]
		if !ok {
			row = &core.PopularityRow{SKU: in.SKU}
			rows[in.SKU] = row
		}
		switch in.Type {
		case core.InteractionPurchase:
			row.PurchaseCount++
		case core.InteractionView:
			row.ViewCount++
		}
		row.TotalCount++
	}

	out := make([]*core.PopularityRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// 确保 MemoryCatalog 实现了目录与行为存储接口
var (
	_ core.ProductStore     = (*MemoryCatalog)(nil)
	_ core.InteractionStore = (*MemoryCatalog)(nil)
)
