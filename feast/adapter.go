package feast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/shoprec/feature"
)

// ProfileAdapter 将 Feast 在线特征库适配为画像向量提供者。
//
// 典型场景：离线任务定期物化用户画像向量到 Feast，
// 在线请求直接读取，避免实时扫描交互日志。
// 向量以 JSON 数组字符串存储在单个特征中。
type ProfileAdapter struct {
	// Client Feast 客户端
	Client Client

	// Project 项目名称
	Project string

	// Feature 画像向量特征名，默认 "user_profile:vector"
	Feature string

	// EntityKey 用户实体键，默认 "user_id"
	EntityKey string
}

// Name 返回提供者名称
func (a *ProfileAdapter) Name() string {
	return "feast.profile"
}

// ProfileVector 从 Feast 在线库读取用户画像向量。
// 特征缺失或为空时返回空向量（表示无画像），不视为错误。
func (a *ProfileAdapter) ProfileVector(ctx context.Context, userID string) (feature.Vector, error) {
	if a.Client == nil {
		return nil, fmt.Errorf("feast client is required")
	}

	featureName := a.Feature
	if featureName == "" {
		featureName = "user_profile:vector"
	}
	entityKey := a.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}

	resp, err := a.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features: []string{featureName},
		EntityRows: []map[string]interface{}{
			{entityKey: userID},
		},
		Project: a.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast profile vector: %w", err)
	}
	if len(resp.FeatureVectors) == 0 {
		return feature.Vector{}, nil
	}

	raw, ok := resp.FeatureVectors[0].Values[featureName]
	if !ok || raw == nil {
		return feature.Vector{}, nil
	}

	encoded, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("feast profile vector: feature %q is not a string", featureName)
	}
	if encoded == "" {
		return feature.Vector{}, nil
	}

	var vec []float64
	if err := json.Unmarshal([]byte(encoded), &vec); err != nil {
		return nil, fmt.Errorf("feast profile vector: decode %q: %w", featureName, err)
	}
	return feature.Vector(vec), nil
}

// 确保 ProfileAdapter 实现了 feature.ProfileProvider 接口
var _ feature.ProfileProvider = (*ProfileAdapter)(nil)
