package core

import "time"

// Product 是目录中的商品记录。
// SKU 是不可变身份；价格与规格会随目录生命周期变化，由外部目录服务维护，
// 推荐侧只读。
type Product struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Brand       string
	Price       float64        // our_price，单位为主货币
	Spec        map[string]any // 自由规格表：key -> number/bool/string
	Active      bool
}

// InteractionType 是用户对商品的行为类型。
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionCartAdd  InteractionType = "cart_add"
	InteractionWishlist InteractionType = "wishlist"
	InteractionPurchase InteractionType = "purchase"
	InteractionSearch   InteractionType = "search"
)

// ProfileWeight 返回该行为在用户画像聚合中的权重。
// view=1, cart_add=2, wishlist=3, purchase=5, search=0.5；未知类型为 0。
func (t InteractionType) ProfileWeight() float64 {
	switch t {
	case InteractionView:
		return 1
	case InteractionCartAdd:
		return 2
	case InteractionWishlist:
		return 3
	case InteractionPurchase:
		return 5
	case InteractionSearch:
		return 0.5
	default:
		return 0
	}
}

// Valid 检查行为类型是否为已知类型。
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionCartAdd, InteractionWishlist,
		InteractionPurchase, InteractionSearch:
		return true
	}
	return false
}

// Interaction 是一条用户行为记录，追加写、不修改、不删除。
// 由面向客户端的服务在用户动作发生时写入；推荐侧用它构建用户画像与热度。
type Interaction struct {
	ID        string
	UserID    string
	SKU       string
	Type      InteractionType
	Timestamp time.Time
	SessionID string         // 可选
	Metadata  map[string]any // 可选
}

// Validate 校验交互记录的必填字段。
// 缺失字段属于数据错误：快速失败，不做静默修正。
func (in *Interaction) Validate() error {
	if in.UserID == "" {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "interaction: missing user_id")
	}
	if in.SKU == "" {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "interaction: missing sku")
	}
	if !in.Type.Valid() {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "interaction: unknown type "+string(in.Type))
	}
	if in.Timestamp.IsZero() {
		return NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "interaction: missing timestamp")
	}
	return nil
}
