package feature

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/shoprec/core"
)

// ProfileProvider 提供用户画像向量。
//
// 两种实现：
//   - ProfileBuilder：请求时从行为历史实时聚合
//   - feast.ProfileAdapter：读取离线物化到 Feature Store 的预计算画像
//
// 空向量表示"该用户无画像"，调用方应回退到热度召回，不是错误。
type ProfileProvider interface {
	Name() string
	ProfileVector(ctx context.Context, userID string) (Vector, error)
}

// DefaultProfileWindow 是画像聚合的行为时间窗口。
const DefaultProfileWindow = 60 * 24 * time.Hour

// ProfileBuilder 把用户近期行为聚合为单个画像向量：
//
//	profile = Σ(vec(product) × weight(type)) / Σ(weight)
//
// 权重见 core.InteractionType.ProfileWeight。只统计窗口内、且指向当前
// 活跃商品的行为；整个聚合使用同一个词表快照（Extractor 持有）。
type ProfileBuilder struct {
	Products     core.ProductStore
	Interactions core.InteractionStore
	Extractor    *Extractor

	// Window 行为时间窗口，0 使用 DefaultProfileWindow（60 天）
	Window time.Duration
}

func (b *ProfileBuilder) Name() string { return "profile.builder" }

// ProfileVector 构建用户画像向量。
// 无窗口内行为或行为全部指向失效商品时返回空向量（nil error）。
// 商品数据错误（抽取失败）快速失败上抛。
func (b *ProfileBuilder) ProfileVector(ctx context.Context, userID string) (Vector, error) {
	if userID == "" {
		return Vector{}, nil
	}

	window := b.Window
	if window <= 0 {
		window = DefaultProfileWindow
	}

	since := time.Now().Add(-window)
	interactions, err := b.Interactions.RecentByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("profile: recent interactions: %w", err)
	}
	if len(interactions) == 0 {
		return Vector{}, nil
	}

	skuSet := make(map[string]struct{}, len(interactions))
	skus := make([]string, 0, len(interactions))
	for _, in := range interactions {
		if _, ok := skuSet[in.SKU]; ok {
			continue
		}
		skuSet[in.SKU] = struct{}{}
		skus = append(skus, in.SKU)
	}

	products, err := b.Products.FindActiveBySKUSet(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("profile: fetch products: %w", err)
	}
	bySKU := make(map[string]*core.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}

	var (
		sum         Vector
		totalWeight float64
	)
	for _, in := range interactions {
		p, ok := bySKU[in.SKU]
		if !ok {
			continue // 商品已下架/不活跃，跳过
		}
		weight := in.Type.ProfileWeight()
		if weight == 0 {
			continue
		}

		vec, err := b.Extractor.Extract(p)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = make(Vector, len(vec))
		}
		for i := range vec {
			sum[i] += vec[i] * weight
		}
		totalWeight += weight
	}

	if totalWeight == 0 || sum == nil {
		return Vector{}, nil
	}
	for i := range sum {
		sum[i] /= totalWeight
	}
	return sum, nil
}
