package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/think41/catalog/internal/config"
	"github.com/think41/catalog/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// MaintenanceQueue 维护任务队列
	MaintenanceQueue = constants.QueueMaintenance
)

// ErrDisabled 队列未启用
var ErrDisabled = errors.New("queue is disabled")

// Client 队列客户端封装
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDepartmentMigration 推送部门规范化任务（维护队列，不重试，同一时间仅保留一个）
func (c *Client) EnqueueDepartmentMigration(payload DepartmentMigrationPayload) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	task, err := NewDepartmentMigrationTask(payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.Enqueue(task,
		asynq.Queue(MaintenanceQueue),
		asynq.MaxRetry(0),
		asynq.Unique(30*time.Minute),
	)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// EnqueueCatalogImport 推送商品目录导入任务
func (c *Client) EnqueueCatalogImport(payload CatalogImportPayload) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	task, err := NewCatalogImportTask(payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.Enqueue(task, asynq.Queue(c.defaultQueue), asynq.MaxRetry(1), asynq.Timeout(time.Hour))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1, MaintenanceQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
