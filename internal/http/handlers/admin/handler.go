package admin

import "github.com/think41/catalog/internal/provider"

// Handler 管理接口处理器入口
// 说明：目录写接口与数据迁移 / 导入接口，鉴权中间件尚未接入。
type Handler struct {
	*provider.Container
}

// New 创建管理接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
