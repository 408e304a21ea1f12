package feature

import (
	"math"
	"testing"

	"github.com/rushteam/shoprec/core"
)

func testVocab() *Vocabulary {
	return &Vocabulary{
		Version:    "test",
		Categories: map[string]int{"laptop": 0, "phone": 1},
		Brands:     map[string]int{"TechBrand": 0},
		SpecKeys:   []string{"ram_gb", "ssd"},
		Terms:      []string{"gaming", "laptop"},
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(testVocab())

	p := &core.Product{
		SKU:         "sku-1",
		Name:        "Gaming Laptop",
		Description: "gaming laptop",
		Category:    "laptop",
		Brand:       "TechBrand",
		Price:       99,
		Spec:        map[string]any{"ram_gb": 32, "ssd": true},
		Active:      true,
	}

	vec, err := e.Extract(p)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(vec) != e.Vocab.Dim() {
		t.Fatalf("vector dim = %d, want %d", len(vec), e.Vocab.Dim())
	}

	// 布局：[laptop, phone, TechBrand, price, ram_gb, ssd, gaming, laptop]
	want := Vector{
		1, 0, // 类目 one-hot
		1,                     // 品牌 one-hot
		math.Log(100) / 10,    // 价格
		0.032,                 // ram_gb: 32/1000
		1,                     // ssd: true
		1,                     // gaming: min(2/4, 0.1)*10
		1,                     // laptop: min(2/4, 0.1)*10
	}
	for i := range want {
		if math.Abs(vec[i]-want[i]) > 1e-9 {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}

func TestExtractor_Extract_UnknownCategoryBrand(t *testing.T) {
	e := NewExtractor(testVocab())

	p := &core.Product{
		SKU:      "sku-new",
		Name:     "New Thing",
		Category: "watch",      // 不在快照中
		Brand:    "OtherBrand", // 不在快照中
		Price:    50,
	}

	vec, err := e.Extract(p)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	// 快照外类目/品牌得到全零段，不是错误
	for i := 0; i < 3; i++ {
		if vec[i] != 0 {
			t.Errorf("vec[%d] = %v, want 0 for unknown category/brand", i, vec[i])
		}
	}
}

func TestExtractor_Extract_InvalidInput(t *testing.T) {
	e := NewExtractor(testVocab())

	tests := []struct {
		name    string
		product *core.Product
	}{
		{name: "nil product", product: nil},
		{
			name:    "missing category",
			product: &core.Product{SKU: "s", Name: "n", Brand: "b", Price: 10},
		},
		{
			name:    "missing brand",
			product: &core.Product{SKU: "s", Name: "n", Category: "c", Price: 10},
		},
		{
			name:    "missing name",
			product: &core.Product{SKU: "s", Category: "c", Brand: "b", Price: 10},
		},
		{
			name:    "zero price",
			product: &core.Product{SKU: "s", Name: "n", Category: "c", Brand: "b", Price: 0},
		},
		{
			name:    "negative price",
			product: &core.Product{SKU: "s", Name: "n", Category: "c", Brand: "b", Price: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.product)
			if err == nil {
				t.Fatal("Extract() expected error, got nil")
			}
			if !core.IsInvalidInput(err) {
				t.Errorf("expected INVALID_INPUT domain error, got %v", err)
			}
		})
	}
}

func TestSpecFeature(t *testing.T) {
	spec := map[string]any{
		"ram_gb":  2000, // 超过 1000，截断到 1
		"weight":  -3.5, // 负数截断到 0
		"ssd":     false,
		"color":   "midnight black", // 字符串取长度 /100
		"unknown": []string{"x"},    // 不支持的类型
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"ram_gb", 1},
		{"weight", 0},
		{"ssd", 0},
		{"color", 0.14},
		{"unknown", 0},
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := specFeature(spec, tt.key); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("specFeature(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	words := tokenize("Gaming-Laptop PRO, 32GB!")
	want := []string{"gaming", "laptop", "pro", "32gb"}
	if len(words) != len(want) {
		t.Fatalf("tokenize() = %v, want %v", words, want)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("tokenize()[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}
