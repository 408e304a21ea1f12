package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/shoprec/core"
)

type nopNode struct{ name string }

func (n *nopNode) Name() string { return n.name }
func (n *nopNode) Kind() Kind   { return KindPostProcess }
func (n *nopNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	content := `
pipeline:
  name: post
  nodes:
    - type: nop
      config:
        key: value
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "post" {
		t.Errorf("name = %q, want post", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 1 || cfg.Pipeline.Nodes[0].Type != "nop" {
		t.Fatalf("nodes = %+v", cfg.Pipeline.Nodes)
	}
}

func TestConfig_BuildPipeline(t *testing.T) {
	factory := NewNodeFactory()
	factory.Register("nop", func(config map[string]interface{}) (Node, error) {
		return &nopNode{name: "nop"}, nil
	})

	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "nop"}}

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 1 {
		t.Errorf("built %d nodes, want 1", len(p.Nodes))
	}

	cfg.Pipeline.Nodes = []NodeConfig{{Type: "unknown"}}
	if _, err := cfg.BuildPipeline(factory); err == nil {
		t.Error("expected error for unknown node type")
	}
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{Nodes: []Node{&nopNode{name: "a"}, &nopNode{name: "b"}}}

	items := []*core.Item{core.NewItem("x")}
	out, err := p.Run(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) != 1 || out[0].SKU != "x" {
		t.Errorf("Run() = %+v", out)
	}
}
