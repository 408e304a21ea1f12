package feature

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/shoprec/core"
)

// MaxSpecKeys 是规格特征键的上限：按目录中出现频次取 Top-K。
const MaxSpecKeys = 20

// DefaultTerms 是默认的领域词表，用于词频特征。
// 可通过 WithTerms 覆盖为业务自己的词表。
var DefaultTerms = []string{
	"laptop", "phone", "tablet", "gaming", "wireless", "bluetooth",
	"camera", "battery", "screen", "portable", "smart", "premium",
	"pro", "ultra", "compact", "performance", "storage", "fast",
	"hd", "usb",
}

// Vocabulary 是一次目录扫描得到的词表快照：类目索引、品牌索引、
// Top-K 规格键、固定词表。
//
// 快照显式传递、不做全局可变状态：同一次聚合/比较中的所有向量必须
// 使用同一个 Vocabulary 实例，避免不同词表下抽取的向量互相比较。
// 重建节奏由调用方决定（目录刷新时重建即可）。
type Vocabulary struct {
	Version string // 快照版本（日志/排查用）

	Categories map[string]int // 类目 -> one-hot 下标
	Brands     map[string]int // 品牌 -> one-hot 下标
	SpecKeys   []string       // 频次 Top-K 规格键，顺序固定
	Terms      []string       // 固定词表，顺序固定

	BuiltAt time.Time
}

// Dim 返回该快照下特征向量的维度。
func (v *Vocabulary) Dim() int {
	return len(v.Categories) + len(v.Brands) + 1 + len(v.SpecKeys) + len(v.Terms)
}

// VocabularyOption 词表构建配置选项
type VocabularyOption func(*vocabularyOptions)

type vocabularyOptions struct {
	terms       []string
	maxSpecKeys int
}

// WithTerms 覆盖默认词表。
func WithTerms(terms []string) VocabularyOption {
	return func(o *vocabularyOptions) {
		o.terms = terms
	}
}

// WithMaxSpecKeys 覆盖规格键上限（默认 20）。
func WithMaxSpecKeys(n int) VocabularyOption {
	return func(o *vocabularyOptions) {
		o.maxSpecKeys = n
	}
}

// BuildVocabulary 扫描当前活跃目录并构建词表快照。
// 类目/品牌索引按字典序分配，规格键按出现频次取 Top-K（同频按字典序），
// 保证同一目录状态下构建结果确定。
func BuildVocabulary(ctx context.Context, products core.ProductStore, opts ...VocabularyOption) (*Vocabulary, error) {
	o := &vocabularyOptions{
		terms:       DefaultTerms,
		maxSpecKeys: MaxSpecKeys,
	}
	for _, opt := range opts {
		opt(o)
	}

	all, err := products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}

	catSet := make(map[string]struct{})
	brandSet := make(map[string]struct{})
	specFreq := make(map[string]int)

	for _, p := range all {
		if p == nil {
			continue
		}
		if p.Category != "" {
			catSet[p.Category] = struct{}{}
		}
		if p.Brand != "" {
			brandSet[p.Brand] = struct{}{}
		}
		for k := range p.Spec {
			specFreq[k]++
		}
	}

	categories := indexSorted(catSet)
	brands := indexSorted(brandSet)

	specKeys := make([]string, 0, len(specFreq))
	for k := range specFreq {
		specKeys = append(specKeys, k)
	}
	sort.Slice(specKeys, func(i, j int) bool {
		if specFreq[specKeys[i]] != specFreq[specKeys[j]] {
			return specFreq[specKeys[i]] > specFreq[specKeys[j]]
		}
		return specKeys[i] < specKeys[j]
	})
	if len(specKeys) > o.maxSpecKeys {
		specKeys = specKeys[:o.maxSpecKeys]
	}

	terms := make([]string, len(o.terms))
	copy(terms, o.terms)

	now := time.Now()
	return &Vocabulary{
		Version: fmt.Sprintf("%d-c%d-b%d-s%d",
			now.Unix(), len(categories), len(brands), len(specKeys)),
		Categories: categories,
		Brands:     brands,
		SpecKeys:   specKeys,
		Terms:      terms,
		BuiltAt:    now,
	}, nil
}

// indexSorted 将集合按字典序映射为稳定下标。
func indexSorted(set map[string]struct{}) map[string]int {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]int, len(keys))
	for i, k := range keys {
		out[k] = i
	}
	return out
}
