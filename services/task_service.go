package services

import (
	"errors"
	"time"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var taskTransitions = map[string][]string{
	models.TaskStatusPending:    {models.TaskStatusInProgress, models.TaskStatusCancelled},
	models.TaskStatusInProgress: {models.TaskStatusCompleted, models.TaskStatusCancelled},
	models.TaskStatusCompleted:  {},
	models.TaskStatusCancelled:  {},
}

var taskTypes = []string{
	models.TaskTypePicking,
	models.TaskTypePacking,
	models.TaskTypeReceiving,
}

type TaskService struct {
	db        *gorm.DB
	logger    *zap.Logger
	publisher EventPublisher
}

func NewTaskService(db *gorm.DB, logger *zap.Logger, publisher EventPublisher) *TaskService {
	return &TaskService{db: db, logger: logger, publisher: publisher}
}

type CreateTaskInput struct {
	TaskType     string `json:"task_type" validate:"required"`
	AssignedToID uint   `json:"assigned_to_id" validate:"required"`
	OrderID      *uint  `json:"order_id"`
	ReceivingID  *uint  `json:"receiving_id"`
	Notes        string `json:"notes"`
}

func (s *TaskService) Create(input CreateTaskInput, actorID int) (*models.Task, error) {
	if !slices.Contains(taskTypes, input.TaskType) {
		return nil, apperr.Validation("unknown task type: %s", input.TaskType)
	}

	switch input.TaskType {
	case models.TaskTypePicking, models.TaskTypePacking:
		if input.OrderID == nil {
			return nil, apperr.Validation("%s task requires an order reference", input.TaskType)
		}
		var order models.Order
		if err := s.db.First(&order, *input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("order %d not found", *input.OrderID)
			}
			return nil, err
		}
	case models.TaskTypeReceiving:
		if input.ReceivingID == nil {
			return nil, apperr.Validation("receiving task requires a receiving reference")
		}
		var receiving models.Receiving
		if err := s.db.First(&receiving, *input.ReceivingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("receiving %d not found", *input.ReceivingID)
			}
			return nil, err
		}
	}

	if err := s.validateAssignee(input.AssignedToID); err != nil {
		return nil, err
	}

	task := models.Task{
		TaskType:     input.TaskType,
		AssignedToID: input.AssignedToID,
		Status:       models.TaskStatusPending,
		OrderID:      input.OrderID,
		ReceivingID:  input.ReceivingID,
		Notes:        input.Notes,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	logActivity(s.db, s.logger, models.EntityTask, task.ID, "created", nil, task, actorID)
	publish(s.publisher, events.EventTaskAssigned, map[string]interface{}{
		"task_id":        task.ID,
		"task_type":      task.TaskType,
		"assigned_to_id": task.AssignedToID,
		"actor":          actorID,
	})

	return &task, nil
}

// TransitionStatus drives the task workflow. Entering in_progress stamps
// StartedAt once; entering completed stamps CompletedAt and derives the
// completion duration in whole minutes.
func (s *TaskService) TransitionStatus(taskID uint, newStatus string, actorID int) (*models.Task, error) {
	if _, known := taskTransitions[newStatus]; !known {
		return nil, apperr.Validation("unknown task status: %s", newStatus)
	}

	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task %d not found", taskID)
		}
		return nil, err
	}

	oldStatus := task.Status
	if !slices.Contains(taskTransitions[oldStatus], newStatus) {
		return nil, apperr.InvalidTransition(
			"task %d cannot move from %s to %s", task.ID, oldStatus, newStatus)
	}

	now := time.Now()
	switch newStatus {
	case models.TaskStatusInProgress:
		if task.StartedAt == nil {
			task.StartedAt = &now
		}
	case models.TaskStatusCompleted:
		task.CompletedAt = &now
		if task.StartedAt != nil {
			task.CompletionMinutes = int(now.Sub(*task.StartedAt).Minutes())
		}
	}

	task.Status = newStatus
	task.UpdatedBy = actorID
	if err := s.db.Save(&task).Error; err != nil {
		return nil, err
	}

	logActivity(s.db, s.logger, models.EntityTask, task.ID, "status_change",
		map[string]string{"status": oldStatus},
		map[string]string{"status": newStatus}, actorID)

	if newStatus == models.TaskStatusCompleted {
		publish(s.publisher, events.EventTaskCompleted, map[string]interface{}{
			"task_id":            task.ID,
			"task_type":          task.TaskType,
			"assigned_to_id":     task.AssignedToID,
			"completion_minutes": task.CompletionMinutes,
			"actor":              actorID,
		})
	}

	return &task, nil
}

// Reassign hands a task to another active staff user. Terminal tasks stay
// with whoever finished or cancelled them.
func (s *TaskService) Reassign(taskID, newAssigneeID uint, actorID int) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task %d not found", taskID)
		}
		return nil, err
	}

	if task.Status == models.TaskStatusCompleted || task.Status == models.TaskStatusCancelled {
		return nil, apperr.Conflict("task %d is %s and cannot be reassigned", task.ID, task.Status)
	}

	if err := s.validateAssignee(newAssigneeID); err != nil {
		return nil, err
	}

	oldAssignee := task.AssignedToID
	task.AssignedToID = newAssigneeID
	task.UpdatedBy = actorID
	if err := s.db.Save(&task).Error; err != nil {
		return nil, err
	}

	logActivity(s.db, s.logger, models.EntityTask, task.ID, "reassigned",
		map[string]uint{"assigned_to_id": oldAssignee},
		map[string]uint{"assigned_to_id": newAssigneeID}, actorID)
	publish(s.publisher, events.EventTaskAssigned, map[string]interface{}{
		"task_id":        task.ID,
		"task_type":      task.TaskType,
		"assigned_to_id": newAssigneeID,
		"actor":          actorID,
	})

	return &task, nil
}

func (s *TaskService) validateAssignee(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user %d not found", userID)
		}
		return err
	}
	if !user.IsActive {
		return apperr.Validation("user %s is not active", user.Email)
	}
	if user.Role != models.RoleStaff {
		return apperr.Validation("user %s does not have the staff role", user.Email)
	}
	return nil
}

func (s *TaskService) Get(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task %d not found", taskID)
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) List(includeDeleted bool) ([]models.Task, error) {
	db := s.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var tasks []models.Task
	if err := db.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
