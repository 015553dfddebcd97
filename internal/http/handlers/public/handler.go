package public

import (
	handlershared "github.com/think41/catalog/internal/http/handlers/shared"
	"github.com/think41/catalog/internal/provider"
)

// Handler 公开只读接口处理器入口
// 说明：商品、分类、品牌、部门、配送中心的查询接口。
type Handler struct {
	*provider.Container
	lists handlershared.ListOptions
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c, lists: handlershared.NewListOptions(c.Config.Catalog)}
}
