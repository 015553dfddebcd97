package models

import "time"

// 迁移状态
const (
	MigrationStatusRunning   = "running"
	MigrationStatusCompleted = "completed"
	MigrationStatusFailed    = "failed"
)

// MigrationRecord 数据迁移完成标记
type MigrationRecord struct {
	Name        string     `gorm:"primaryKey;type:varchar(100)" bson:"_id" json:"name"`         // 迁移名称
	Status      string     `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"` // 状态
	Stats       JSON       `gorm:"type:json" bson:"stats" json:"stats"`                         // 统计信息
	Error       string     `gorm:"type:text" bson:"error,omitempty" json:"error,omitempty"`     // 失败原因
	StartedAt   time.Time  `bson:"startedAt" json:"startedAt"`                                  // 开始时间
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`          // 完成时间
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`                                  // 更新时间
}

// TableName 指定表名
func (MigrationRecord) TableName() string {
	return "migration_records"
}

// Completed 是否已完成
func (r *MigrationRecord) Completed() bool {
	return r != nil && r.Status == MigrationStatusCompleted
}
