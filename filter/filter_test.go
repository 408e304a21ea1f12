package filter

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/store"
)

func TestBlacklist(t *testing.T) {
	f := &Blacklist{SKUs: []string{"bad-1", "bad-2"}}

	tests := []struct {
		sku  string
		want bool
	}{
		{"bad-1", true},
		{"bad-2", true},
		{"good", false},
	}
	for _, tt := range tests {
		it := core.NewItem(tt.sku)
		got, err := f.ShouldFilter(context.Background(), nil, it)
		if err != nil {
			t.Fatalf("ShouldFilter(%s) error = %v", tt.sku, err)
		}
		if got != tt.want {
			t.Errorf("ShouldFilter(%s) = %v, want %v", tt.sku, got, tt.want)
		}
	}
}

func TestBlacklist_FromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	_ = s.Set(ctx, "blacklist", []byte(`["stored-bad"]`))

	f := &Blacklist{Store: s, Key: "blacklist"}

	got, err := f.ShouldFilter(ctx, nil, core.NewItem("stored-bad"))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("stored blacklist entry should be filtered")
	}

	got, _ = f.ShouldFilter(ctx, nil, core.NewItem("other"))
	if got {
		t.Error("non-blacklisted item should pass")
	}
}

func TestExpr(t *testing.T) {
	it := core.NewItem("sku-1")
	it.Score = 0.03
	it.Meta["category"] = "refurbished"

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty expression keeps item", "", false},
		{"score threshold", "item.score < 0.05", true},
		{"category match", `item.meta.category == "refurbished"`, true},
		{"category mismatch", `item.meta.category == "laptop"`, false},
		{"combined", `item.meta.category == "refurbished" && item.score < 0.05`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Expr{Expression: tt.expr}
			got, err := f.ShouldFilter(context.Background(), nil, it)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_FirstMatchWinsAndLabels(t *testing.T) {
	n := &Node{Filters: []Filter{
		&Blacklist{SKUs: []string{"blocked"}},
	}}

	items := []*core.Item{core.NewItem("blocked"), core.NewItem("kept")}
	out, err := n.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].SKU != "kept" {
		t.Fatalf("Process() = %v, want only kept", out)
	}
}

func TestInteracted(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewMemoryCatalog()
	_ = catalog.Record(ctx, &core.Interaction{
		UserID: "u1", SKU: "seen", Type: core.InteractionView, Timestamp: time.Now().Add(-time.Hour),
	})

	f := &Interacted{Interactions: catalog}
	rctx := &core.RecommendContext{UserID: "u1"}

	got, err := f.ShouldFilter(ctx, rctx, core.NewItem("seen"))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("interacted item should be filtered")
	}

	got, _ = f.ShouldFilter(ctx, rctx, core.NewItem("fresh"))
	if got {
		t.Error("fresh item should pass")
	}
}
