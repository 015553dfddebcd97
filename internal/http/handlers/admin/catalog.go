package admin

import (
	"github.com/think41/catalog/internal/http/response"
	"github.com/think41/catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input, "Error creating product") {
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error creating product")
		return
	}
	requestLog(c).Infow("product_created", "id", product.ID, "product_id", product.ProductID)
	response.Created(c, "Product created successfully", product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input, "Error updating product") {
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error updating product")
		return
	}
	response.SuccessWithMsg(c, "Product updated successfully", product)
}

// DeleteProduct 软删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error deleting product")
		return
	}
	response.SuccessWithMsg(c, "Product deleted successfully", nil)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if !bindJSON(c, &input, "Error creating category") {
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error creating category")
		return
	}
	response.Created(c, "Category created successfully", category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	var input service.CategoryInput
	if !bindJSON(c, &input, "Error updating category") {
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error updating category")
		return
	}
	response.SuccessWithMsg(c, "Category updated successfully", category)
}

// DeleteCategory 软删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.CategoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error deleting category")
		return
	}
	response.SuccessWithMsg(c, "Category deleted successfully", nil)
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var input service.BrandInput
	if !bindJSON(c, &input, "Error creating brand") {
		return
	}
	brand, err := h.BrandService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error creating brand")
		return
	}
	response.Created(c, "Brand created successfully", brand)
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	var input service.BrandInput
	if !bindJSON(c, &input, "Error updating brand") {
		return
	}
	brand, err := h.BrandService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error updating brand")
		return
	}
	response.SuccessWithMsg(c, "Brand updated successfully", brand)
}

// DeleteBrand 软删除品牌
func (h *Handler) DeleteBrand(c *gin.Context) {
	if err := h.BrandService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error deleting brand")
		return
	}
	response.SuccessWithMsg(c, "Brand deleted successfully", nil)
}

// CreateDepartment 创建部门
func (h *Handler) CreateDepartment(c *gin.Context) {
	var input service.DepartmentInput
	if !bindJSON(c, &input, "Error creating department") {
		return
	}
	department, err := h.DepartmentService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error creating department")
		return
	}
	response.Created(c, "Department created successfully", department)
}

// UpdateDepartment 更新部门
func (h *Handler) UpdateDepartment(c *gin.Context) {
	var input service.DepartmentInput
	if !bindJSON(c, &input, "Error updating department") {
		return
	}
	department, err := h.DepartmentService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error updating department")
		return
	}
	response.SuccessWithMsg(c, "Department updated successfully", department)
}

// DeleteDepartment 软删除部门
func (h *Handler) DeleteDepartment(c *gin.Context) {
	if err := h.DepartmentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error deleting department")
		return
	}
	response.SuccessWithMsg(c, "Department deleted successfully", nil)
}
