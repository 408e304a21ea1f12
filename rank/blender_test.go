package rank

import (
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func item(sku string, score float64) *core.Item {
	it := core.NewItem(sku)
	it.Score = score
	return it
}

func TestBlender_Blend_Normalization(t *testing.T) {
	b := &Blender{}

	// 热度分数无上界，内容分数 ∈ [0,1]；归一化后权重才有统一含义
	out := b.Blend([]WeightedList{
		{
			Items:  []*core.Item{item("a", 0.8), item("b", 0.4)},
			Weight: 0.5,
			Source: core.SourceContent,
		},
		{
			Items:  []*core.Item{item("c", 200), item("d", 100)},
			Weight: 0.5,
			Source: core.SourcePopularity,
		},
	}, 0)

	if len(out) != 4 {
		t.Fatalf("blended %d items, want 4", len(out))
	}

	scores := make(map[string]float64, len(out))
	for _, it := range out {
		scores[it.SKU] = it.Score
	}

	// 每个列表的最高分归一化后恰好为 1.0，贡献 = 权重
	for _, sku := range []string{"a", "c"} {
		if math.Abs(scores[sku]-0.5) > 1e-9 {
			t.Errorf("top item %q score = %v, want 0.5", sku, scores[sku])
		}
	}
	for _, sku := range []string{"b", "d"} {
		if math.Abs(scores[sku]-0.25) > 1e-9 {
			t.Errorf("item %q score = %v, want 0.25", sku, scores[sku])
		}
	}
}

func TestBlender_Blend_HybridSource(t *testing.T) {
	b := &Blender{}

	out := b.Blend([]WeightedList{
		{
			Items:  []*core.Item{item("both", 1), item("only-content", 0.5)},
			Weight: 0.6,
			Source: core.SourceContent,
		},
		{
			Items:  []*core.Item{item("both", 10)},
			Weight: 0.4,
			Source: core.SourcePopularity,
		},
	}, 0)

	bySKU := make(map[string]*core.Item)
	for _, it := range out {
		bySKU[it.SKU] = it
	}

	if got := bySKU["both"].Source; got != core.SourceHybrid {
		t.Errorf("item with two contributing sources: Source = %q, want %q", got, core.SourceHybrid)
	}
	if got := bySKU["both"].Score; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("accumulated score = %v, want 1.0 (0.6 + 0.4)", got)
	}
	if got := bySKU["only-content"].Source; got != core.SourceContent {
		t.Errorf("single-source item: Source = %q, want %q", got, core.SourceContent)
	}
}

func TestBlender_Blend_SameSourceLabelNotHybrid(t *testing.T) {
	b := &Blender{}

	// u2i 与 i2i 共用 collaborative 标签，不构成 hybrid
	out := b.Blend([]WeightedList{
		{
			Items:  []*core.Item{item("x", 0.9)},
			Weight: 0.24,
			Source: core.SourceCollaborative,
		},
		{
			Items:  []*core.Item{item("x", 0.7)},
			Weight: 0.16,
			Source: core.SourceCollaborative,
		},
	}, 0)

	if len(out) != 1 {
		t.Fatalf("blended %d items, want 1", len(out))
	}
	if out[0].Source != core.SourceCollaborative {
		t.Errorf("Source = %q, want %q", out[0].Source, core.SourceCollaborative)
	}
}

func TestBlender_Blend_ZeroScoreList(t *testing.T) {
	b := &Blender{}

	// 全零列表：归一化除数兜底为 1，结果保持 0，不产生 NaN
	out := b.Blend([]WeightedList{
		{
			Items:  []*core.Item{item("a", 0), item("b", 0)},
			Weight: 1,
			Source: core.SourcePopularity,
		},
	}, 0)

	for _, it := range out {
		if it.Score != 0 {
			t.Errorf("item %q score = %v, want 0", it.SKU, it.Score)
		}
		if math.IsNaN(it.Score) {
			t.Errorf("item %q score is NaN", it.SKU)
		}
	}
}

func TestBlender_Blend_OrderAndLimit(t *testing.T) {
	b := &Blender{}

	out := b.Blend([]WeightedList{
		{
			Items:  []*core.Item{item("low", 0.2), item("high", 1), item("mid", 0.5)},
			Weight: 1,
			Source: core.SourceContent,
		},
	}, 2)

	if len(out) != 2 {
		t.Fatalf("limit not applied: got %d items", len(out))
	}
	if out[0].SKU != "high" || out[1].SKU != "mid" {
		t.Errorf("order = [%s, %s], want [high, mid]", out[0].SKU, out[1].SKU)
	}
}

func TestBlender_Blend_MetaAndLabelsCarried(t *testing.T) {
	b := &Blender{}

	src := item("a", 1)
	src.Meta["category"] = "laptop"

	out := b.Blend([]WeightedList{
		{Items: []*core.Item{src}, Weight: 1, Source: core.SourceContent},
	}, 0)

	if got := out[0].MetaString("category"); got != "laptop" {
		t.Errorf("meta category = %q, want laptop", got)
	}
	if _, ok := out[0].Labels["blend_sources"]; !ok {
		t.Error("blend_sources label missing")
	}
}
