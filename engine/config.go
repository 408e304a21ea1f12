package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/shoprec/config"

	// 注册标准 Node 构建器（filter / rerank.diversity / rerank.topn 等）
	_ "github.com/rushteam/shoprec/config/builders"
	"github.com/rushteam/shoprec/pipeline"
)

// Config 是引擎的文件配置，YAML 格式。
//
// 示例：
//
//	engine:
//	  content_weight: 0.4
//	  collaborative_weight: 0.4
//	  popularity_weight: 0.2
//	  diversity_factor: 0.3
//	  cache_ttl: 3600
//	  trending_ttl: 1800
//	  failure_policy: degrade
//	pipeline:
//	  name: post
//	  nodes:
//	    - type: rerank.topn
//	      config:
//	        n: 50
type Config struct {
	Engine struct {
		ContentWeight       float64 `yaml:"content_weight" json:"content_weight"`
		CollaborativeWeight float64 `yaml:"collaborative_weight" json:"collaborative_weight"`
		PopularityWeight    float64 `yaml:"popularity_weight" json:"popularity_weight"`
		DiversityFactor     float64 `yaml:"diversity_factor" json:"diversity_factor"`
		CacheTTL            int     `yaml:"cache_ttl" json:"cache_ttl"`
		TrendingTTL         int     `yaml:"trending_ttl" json:"trending_ttl"`
		FailurePolicy       string  `yaml:"failure_policy" json:"failure_policy"`
	} `yaml:"engine" json:"engine"`

	// Pipeline 追加的后处理节点配置（可选）
	Pipeline *pipeline.Config `yaml:"-" json:"-"`
}

// LoadConfig 从 YAML 文件加载引擎配置。
// 同一文件中的 pipeline 段复用 pipeline.Config 的解析。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var pc pipeline.Config
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("parse pipeline section: %w", err)
	}
	if len(pc.Pipeline.Nodes) > 0 {
		cfg.Pipeline = &pc
	}
	return &cfg, nil
}

// Validate 校验配置取值范围。
func (c *Config) Validate() error {
	e := c.Engine
	for name, w := range map[string]float64{
		"content_weight":       e.ContentWeight,
		"collaborative_weight": e.CollaborativeWeight,
		"popularity_weight":    e.PopularityWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, w)
		}
	}
	if e.DiversityFactor < 0 || e.DiversityFactor > 1 {
		return fmt.Errorf("diversity_factor must be in [0, 1], got %v", e.DiversityFactor)
	}
	if e.CacheTTL < 0 || e.TrendingTTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0")
	}
	switch e.FailurePolicy {
	case "", FailurePolicyDegrade, FailurePolicyFail:
	default:
		return fmt.Errorf("unknown failure_policy: %s", e.FailurePolicy)
	}
	return nil
}

// Apply 把配置应用到引擎。factory 为 nil 时使用默认节点工厂。
func (c *Config) Apply(e *Engine, factory *pipeline.NodeFactory) error {
	if err := c.Validate(); err != nil {
		return err
	}

	e.ContentWeight = c.Engine.ContentWeight
	e.CollaborativeWeight = c.Engine.CollaborativeWeight
	e.PopularityWeight = c.Engine.PopularityWeight
	e.DiversityFactor = c.Engine.DiversityFactor
	e.CacheTTL = c.Engine.CacheTTL
	e.TrendingTTL = c.Engine.TrendingTTL
	e.FailurePolicy = c.Engine.FailurePolicy

	if c.Pipeline != nil {
		if factory == nil {
			factory = config.DefaultFactory()
		}
		p, err := c.Pipeline.BuildPipeline(factory)
		if err != nil {
			return fmt.Errorf("build post pipeline: %w", err)
		}
		e.PostNodes = p.Nodes
	}
	return nil
}
