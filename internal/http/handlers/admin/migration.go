package admin

import (
	"strings"

	handlershared "github.com/think41/catalog/internal/http/handlers/shared"
	"github.com/think41/catalog/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ImportRequest 服务器本地文件导入
type ImportRequest struct {
	Path string `json:"path"`
}

// GetMigrations 迁移记录
func (h *Handler) GetMigrations(c *gin.Context) {
	records, err := h.MigrationService.Records(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error fetching migrations")
		return
	}
	response.Success(c, records)
}

// RunDepartmentMigration 规范化部门引用；队列启用时入队，否则同步执行
func (h *Handler) RunDepartmentMigration(c *gin.Context) {
	force := handlershared.QueryBool(c, "force")
	trigger, err := h.MigrationService.TriggerDepartments(c.Request.Context(), force)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error running department migration")
		return
	}
	requestLog(c).Infow("department_migration_triggered", "force", force, "queued", trigger.Queued, "task_id", trigger.TaskID)
	if trigger.Queued {
		c.JSON(response.CodeAccepted, response.Response{Success: true, Message: "Department migration queued", Data: trigger})
		return
	}
	msg := "Department migration completed"
	if trigger.Report != nil && trigger.Report.Skipped {
		msg = "Department migration already completed"
	}
	response.SuccessWithMsg(c, msg, trigger)
}

// ImportCatalog 导入商品目录：multipart 上传同步导入，JSON path 入队或同步导入
func (h *Handler) ImportCatalog(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.importUpload(c)
		return
	}
	var req ImportRequest
	if !bindJSON(c, &req, "Error importing catalog") {
		return
	}
	trigger, err := h.ImportService.TriggerFile(c.Request.Context(), req.Path)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error importing catalog")
		return
	}
	if trigger.Queued {
		c.JSON(response.CodeAccepted, response.Response{Success: true, Message: "Catalog import queued", Data: trigger})
		return
	}
	response.SuccessWithMsg(c, "Catalog import completed", trigger)
}

func (h *Handler) importUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error importing catalog", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "Error importing catalog", err)
		return
	}
	defer file.Close()

	report, err := h.ImportService.ImportUpload(c.Request.Context(), file)
	if err != nil {
		respondServiceError(c, err, response.CodeInternal, "Error importing catalog")
		return
	}
	requestLog(c).Infow("catalog_upload_imported", "filename", fileHeader.Filename, "created", report.ProductsCreated)
	response.SuccessWithMsg(c, "Catalog import completed", report)
}
