package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/think41/catalog/internal/importer"
	"github.com/think41/catalog/internal/queue"
)

// ImportService 目录导入
type ImportService struct {
	importer  *importer.Importer
	queue     *queue.Client
	importDir string
}

// NewImportService 创建导入服务；importDir 限定 TriggerFile 可读取的目录
func NewImportService(im *importer.Importer, queueClient *queue.Client, importDir string) *ImportService {
	return &ImportService{importer: im, queue: queueClient, importDir: strings.TrimSpace(importDir)}
}

// ImportTrigger 导入结果
type ImportTrigger struct {
	TaskID string           `json:"taskId,omitempty"`
	Queued bool             `json:"queued"`
	Report *importer.Report `json:"report,omitempty"`
}

// ImportUpload 同步导入上传的 CSV
func (s *ImportService) ImportUpload(ctx context.Context, r io.Reader) (*importer.Report, error) {
	report, err := s.importer.Import(ctx, r)
	if err != nil {
		return nil, wrapImportError(err)
	}
	return report, nil
}

// ImportFile 同步导入服务器本地文件，路径不做目录限制，仅供命令行与队列任务使用
func (s *ImportService) ImportFile(ctx context.Context, path string) (*importer.Report, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, invalid("path", "path is required")
	}
	report, err := s.importer.ImportFile(ctx, path)
	if err != nil {
		return nil, wrapImportError(err)
	}
	return report, nil
}

// TriggerFile 导入目录下的相对路径；队列可用时入队，否则同步导入
func (s *ImportService) TriggerFile(ctx context.Context, path string) (*ImportTrigger, error) {
	path, err := s.resolveImportPath(path)
	if err != nil {
		return nil, err
	}
	if s.queue != nil && s.queue.Enabled() {
		taskID, err := s.queue.EnqueueCatalogImport(queue.CatalogImportPayload{Path: path})
		if err == nil {
			return &ImportTrigger{TaskID: taskID, Queued: true}, nil
		}
		if !errors.Is(err, ErrQueueUnavailable) {
			return nil, err
		}
	}
	report, err := s.ImportFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return &ImportTrigger{Report: report}, nil
}

// resolveImportPath 将相对路径解析到导入目录内，拒绝绝对路径与越界路径
func (s *ImportService) resolveImportPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", invalid("path", "path is required")
	}
	if s.importDir == "" {
		return "", invalid("path", "server-side file import is disabled")
	}
	if filepath.IsAbs(path) {
		return "", invalid("path", "must be relative to the import directory")
	}
	root, err := filepath.Abs(s.importDir)
	if err != nil {
		return "", err
	}
	resolved := filepath.Join(root, path)
	if !withinDir(root, resolved) {
		return "", invalid("path", "must stay within the import directory")
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", invalid("path", "file not found in the import directory")
	}
	// 符号链接按真实路径再校验一次
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", err
	}
	realPath, err := filepath.EvalSymlinks(resolved)
	if err != nil || !withinDir(realRoot, realPath) {
		return "", invalid("path", "must stay within the import directory")
	}
	return realPath, nil
}

func withinDir(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// 文件格式错误视为输入错误
func wrapImportError(err error) error {
	if errors.Is(err, importer.ErrInvalidCSV) {
		return invalid("file", err.Error())
	}
	return err
}
