// Package shoprec 是一个电商商品推荐引擎（Shop Recommender）。
//
// 设计要点：
// - 混合推荐: 内容召回 + 协同召回 + 热度召回，归一化加权混排（rank.Blender）
// - 分层策略: 按用户行为数冷启动 / 温启动 / 完整混合三档（engine）
// - Pipeline-first: 后处理逻辑通过 Node 串联（Filter → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package shoprec

import "github.com/rushteam/shoprec/pipeline"

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
