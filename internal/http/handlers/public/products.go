package public

import (
	"github.com/think41/catalog/internal/http/response"
	"github.com/think41/catalog/internal/listquery"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（过滤 / 排序 / 分页）
func (h *Handler) GetProducts(c *gin.Context) {
	filter, err := listquery.Products(c.Request.URL.Query(), h.lists.Products)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching products", err)
		return
	}
	products, total, err := h.ProductService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching products")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetFeaturedProducts 随机推荐商品
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	_, limit, err := listquery.Window(c.Request.URL.Query(), listquery.Options{
		DefaultLimit: h.lists.Featured,
		MaxLimit:     h.lists.Products.MaxLimit,
	})
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching featured products", err)
		return
	}
	products, err := h.ProductService.Featured(c.Request.Context(), limit, c.Query("department"))
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching featured products")
		return
	}
	response.Success(c, products)
}

// GetProductsByCategory 指定分类的商品列表
func (h *Handler) GetProductsByCategory(c *gin.Context) {
	values := c.Request.URL.Query()
	values.Del("category")
	filter, err := listquery.Products(values, h.lists.Products)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching products by category", err)
		return
	}
	products, total, err := h.ProductService.ListByCategory(c.Request.Context(), c.Param("category"), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching products by category")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetProduct 按主键 / 外部编号 / SKU 获取商品
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching product")
		return
	}
	response.Success(c, product)
}
