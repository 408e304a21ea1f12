package feast

import "context"

// Client 是 Feast Feature Store 的客户端接口（遵循依赖倒置，便于替换实现）。
//
// ShopRec 只依赖在线特征读取：离线管道把用户画像向量物化到 Feast
// 在线存储，线上通过 ProfileAdapter 读取，替代请求时的实时聚合。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时预测）
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_profile:vector"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u_1001"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，空时使用客户端默认配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}
