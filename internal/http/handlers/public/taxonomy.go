package public

import (
	"github.com/think41/catalog/internal/http/response"
	"github.com/think41/catalog/internal/listquery"

	"github.com/gin-gonic/gin"
)

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	filter, err := listquery.Categories(c.Request.URL.Query(), h.lists.Categories)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching categories", err)
		return
	}
	categories, total, err := h.CategoryService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching categories")
		return
	}
	response.SuccessWithPage(c, categories, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetCategory 按主键或 slug 获取分类
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching category")
		return
	}
	response.Success(c, category)
}

// GetBrands 品牌列表
func (h *Handler) GetBrands(c *gin.Context) {
	filter, err := listquery.Brands(c.Request.URL.Query(), h.lists.Brands)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching brands", err)
		return
	}
	brands, total, err := h.BrandService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching brands")
		return
	}
	response.SuccessWithPage(c, brands, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetBrand 按主键或 slug 获取品牌
func (h *Handler) GetBrand(c *gin.Context) {
	brand, err := h.BrandService.GetByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching brand")
		return
	}
	response.Success(c, brand)
}

// GetDepartments 部门列表
func (h *Handler) GetDepartments(c *gin.Context) {
	filter, err := listquery.Departments(c.Request.URL.Query(), h.lists.Departments)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching departments", err)
		return
	}
	departments, total, err := h.DepartmentService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching departments")
		return
	}
	response.SuccessWithPage(c, departments, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetDepartment 按主键或 slug 获取部门
func (h *Handler) GetDepartment(c *gin.Context) {
	department, err := h.DepartmentService.GetByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching department")
		return
	}
	response.Success(c, department)
}

// DepartmentSummary 部门商品列表附带的部门摘要
type DepartmentSummary struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GetDepartmentProducts 部门下的商品列表
func (h *Handler) GetDepartmentProducts(c *gin.Context) {
	values := c.Request.URL.Query()
	values.Del("department")
	filter, err := listquery.Products(values, h.lists.Products)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching department products", err)
		return
	}
	department, products, total, err := h.DepartmentService.Products(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching department products")
		return
	}
	summary := DepartmentSummary{ID: department.ID, Name: department.Name, Slug: department.Slug}
	response.SuccessWithDepartmentPage(c, products, summary, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetDistributionCenters 配送中心列表
func (h *Handler) GetDistributionCenters(c *gin.Context) {
	filter, err := listquery.DistributionCenters(c.Request.URL.Query(), h.lists.Centers)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error fetching distribution centers", err)
		return
	}
	centers, total, err := h.DistributionCenterService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching distribution centers")
		return
	}
	response.SuccessWithPage(c, centers, response.NewPagination(filter.Page, filter.PageSize, total))
}

// GetDistributionCenter 按主键或数字编号获取配送中心
func (h *Handler) GetDistributionCenter(c *gin.Context) {
	center, err := h.DistributionCenterService.GetByKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching distribution center")
		return
	}
	response.Success(c, center)
}
