package recall

import (
	"context"
	"testing"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/feature"
	"github.com/rushteam/shoprec/store"
)

func TestSimilar_SimilarProducts(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewMemoryCatalog()
	products := []*core.Product{
		{SKU: "ref", Name: "Gaming Laptop", Description: "gaming laptop", Category: "laptop", Brand: "TechBrand", Price: 1000, Active: true},
		{SKU: "same-cat", Name: "Gaming Laptop Two", Description: "gaming laptop", Category: "laptop", Brand: "OtherBrand", Price: 900, Active: true},
		{SKU: "same-brand", Name: "Smart Phone", Description: "smart phone", Category: "phone", Brand: "TechBrand", Price: 500, Active: true},
		{SKU: "unrelated", Name: "Kettle", Description: "kitchen kettle", Category: "kitchen", Brand: "HomeBrand", Price: 30, Active: true},
	}
	for _, p := range products {
		catalog.PutProduct(p)
	}
	vocab, err := feature.BuildVocabulary(ctx, catalog)
	if err != nil {
		t.Fatal(err)
	}

	r := &Similar{Products: catalog, Extractor: feature.NewExtractor(vocab)}

	items, err := r.SimilarProducts(ctx, "ref", 10)
	if err != nil {
		t.Fatalf("SimilarProducts() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected similar products")
	}

	for _, it := range items {
		// 候选集约束：同类目或同品牌
		if it.SKU == "unrelated" {
			t.Error("cross-category cross-brand product should not be a candidate")
		}
		if it.SKU == "ref" {
			t.Error("reference product should be excluded")
		}
		if it.Score <= DefaultSimilarMinScore {
			t.Errorf("item %s score %v below threshold", it.SKU, it.Score)
		}
	}

	// 同类目且文本相近的 same-cat 应排最前
	if items[0].SKU != "same-cat" {
		t.Errorf("top item = %s, want same-cat", items[0].SKU)
	}

	if lbl, ok := items[0].Labels["similar_to"]; !ok || lbl.Value != "ref" {
		t.Errorf("similar_to label = %v, want ref", lbl)
	}
}

func TestSimilar_UnknownReference(t *testing.T) {
	catalog := store.NewMemoryCatalog()
	r := &Similar{Products: catalog}

	items, err := r.SimilarProducts(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("SimilarProducts() error = %v", err)
	}
	if items != nil {
		t.Errorf("unknown reference should yield empty result, got %v", items)
	}
}
