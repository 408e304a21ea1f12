package recall

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/store"
)

func TestPopularity_Top(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewMemoryCatalog()
	catalog.PutProduct(&core.Product{SKU: "hot", Name: "Hot", Category: "c", Brand: "b", Price: 10, Active: true})
	catalog.PutProduct(&core.Product{SKU: "warm", Name: "Warm", Category: "c", Brand: "b", Price: 10, Active: true})
	catalog.PutProduct(&core.Product{SKU: "gone", Name: "Gone", Category: "c", Brand: "b", Price: 10, Active: false})

	now := time.Now()
	rows := []struct {
		sku string
		typ core.InteractionType
		age time.Duration
	}{
		// hot: 2 purchase + 1 view => raw = 2*5 + 1 + 3 = 14
		{"hot", core.InteractionPurchase, time.Hour},
		{"hot", core.InteractionPurchase, 2 * time.Hour},
		{"hot", core.InteractionView, 3 * time.Hour},
		// warm: 1 view + 1 cart_add => raw = 0 + 1 + 2 = 3
		{"warm", core.InteractionView, time.Hour},
		{"warm", core.InteractionCartAdd, time.Hour},
		// 窗口外的行为不计入
		{"warm", core.InteractionPurchase, 10 * 24 * time.Hour},
		// wishlist 不参与热度统计
		{"warm", core.InteractionWishlist, time.Hour},
		// 不活跃商品的热度被丢弃
		{"gone", core.InteractionPurchase, time.Hour},
	}
	for _, r := range rows {
		if err := catalog.Record(ctx, &core.Interaction{
			UserID: "u", SKU: r.sku, Type: r.typ, Timestamp: now.Add(-r.age),
		}); err != nil {
			t.Fatal(err)
		}
	}

	p := &Popularity{Interactions: catalog, Products: catalog}
	items, err := p.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (inactive excluded)", len(items))
	}
	if items[0].SKU != "hot" {
		t.Errorf("top item = %s, want hot", items[0].SKU)
	}
	if math.Abs(items[0].Score-0.14) > 1e-9 {
		t.Errorf("hot score = %v, want 0.14", items[0].Score)
	}
	if math.Abs(items[1].Score-0.03) > 1e-9 {
		t.Errorf("warm score = %v, want 0.03", items[1].Score)
	}
	if items[0].Source != core.SourcePopularity {
		t.Errorf("source = %q, want popularity", items[0].Source)
	}
}

func TestPopularity_TrendingSource(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewMemoryCatalog()
	catalog.PutProduct(&core.Product{SKU: "s", Name: "S", Category: "c", Brand: "b", Price: 10, Active: true})
	_ = catalog.Record(ctx, &core.Interaction{
		UserID: "u", SKU: "s", Type: core.InteractionView, Timestamp: time.Now().Add(-time.Hour),
	})

	p := &Popularity{Interactions: catalog, Products: catalog, Trending: true}
	if p.Name() != "recall.trending" {
		t.Errorf("Name() = %q, want recall.trending", p.Name())
	}

	items, err := p.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if len(items) != 1 || items[0].Source != core.SourceTrending {
		t.Errorf("trending source not applied: %+v", items)
	}
}

func TestPopularity_EmptyWindow(t *testing.T) {
	catalog := store.NewMemoryCatalog()
	p := &Popularity{Interactions: catalog, Products: catalog}

	items, err := p.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty result without interactions, got %d", len(items))
	}
}
