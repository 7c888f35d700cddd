package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"

	TaskTypePicking   = "picking"
	TaskTypePacking   = "packing"
	TaskTypeReceiving = "receiving"
)

type Task struct {
	gorm.Model
	TaskType          string     `json:"task_type"`
	AssignedToID      uint       `json:"assigned_to_id"`
	Status            string     `json:"status" gorm:"default:'pending'"`
	StartedAt         *time.Time `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	CompletionMinutes int        `json:"completion_minutes" gorm:"default:0"`
	OrderID           *uint      `json:"order_id"`
	ReceivingID       *uint      `json:"receiving_id"`
	Notes             string     `json:"notes"`
	CreatedBy         int
	UpdatedBy         int
	DeletedBy         int
}
