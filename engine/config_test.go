package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/shoprec/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
engine:
  content_weight: 0.5
  collaborative_weight: 0.3
  popularity_weight: 0.2
  diversity_factor: 0.4
  cache_ttl: 600
  trending_ttl: 300
  failure_policy: fail
pipeline:
  name: post
  nodes:
    - type: rerank.topn
      config:
        n: 50
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Engine.ContentWeight != 0.5 {
		t.Errorf("content_weight = %v", cfg.Engine.ContentWeight)
	}
	if cfg.Engine.FailurePolicy != FailurePolicyFail {
		t.Errorf("failure_policy = %v", cfg.Engine.FailurePolicy)
	}
	if cfg.Pipeline == nil || len(cfg.Pipeline.Pipeline.Nodes) != 1 {
		t.Fatal("pipeline section not parsed")
	}

	eng := &Engine{
		Products:     store.NewMemoryCatalog(),
		Interactions: store.NewMemoryCatalog(),
	}
	if err := cfg.Apply(eng, nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if eng.CacheTTL != 600 || eng.TrendingTTL != 300 {
		t.Errorf("ttl not applied: %d / %d", eng.CacheTTL, eng.TrendingTTL)
	}
	if len(eng.PostNodes) != 1 {
		t.Errorf("post nodes = %d, want 1", len(eng.PostNodes))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"zero value ok", func(c *Config) {}, false},
		{"weight above 1", func(c *Config) { c.Engine.ContentWeight = 1.5 }, true},
		{"negative weight", func(c *Config) { c.Engine.PopularityWeight = -0.1 }, true},
		{"diversity above 1", func(c *Config) { c.Engine.DiversityFactor = 2 }, true},
		{"negative ttl", func(c *Config) { c.Engine.CacheTTL = -1 }, true},
		{"unknown policy", func(c *Config) { c.Engine.FailurePolicy = "retry" }, true},
		{"degrade policy ok", func(c *Config) { c.Engine.FailurePolicy = "degrade" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/engine.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
