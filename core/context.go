package core

import "github.com/rushteam/shoprec/pkg/utils"

// RecommendContext 承载用户/会话/场景信息，贯穿整个推荐链路透传。
type RecommendContext struct {
	UserID    string // 使用 string 类型（通用，支持所有 ID 格式）
	SessionID string // 会话推荐入口使用；个性化入口可为空
	Scene     string // home / product_detail / cart 等

	// CurrentSKU 是会话推荐时用户正在浏览的商品（可为空）
	CurrentSKU string

	// Labels 是用户级标签，可驱动链路行为
	// 例如：冷启动用户、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数：limit 覆盖、diversity_factor 覆盖等
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
