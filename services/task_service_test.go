package services

import (
	"testing"
	"time"

	"warehouse-app/apperr"
	"warehouse-app/events"
	"warehouse-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (*TaskService, *capturePublisher) {
	t.Helper()
	db := setupTestDB(t)
	publisher := &capturePublisher{}
	return NewTaskService(db, noopLogger(), publisher), publisher
}

func seedOrderForTask(t *testing.T, svc *TaskService) *models.Order {
	t.Helper()
	customer := createTestCustomer(t, svc.db, "CUST-T1")
	order := models.Order{
		OrderNumber: "ORD-TEST-" + time.Now().Format("150405.000000000"),
		CustomerID:  customer.ID,
		Status:      models.OrderStatusPending,
	}
	require.NoError(t, svc.db.Create(&order).Error)
	return &order
}

func TestCreateTaskRequiresWorkflowReference(t *testing.T) {
	svc, _ := newTaskService(t)
	staff := createTestStaff(t, svc.db, "staff1@warehouse.local")

	_, err := svc.Create(CreateTaskInput{TaskType: "inspection", AssignedToID: staff.ID}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(CreateTaskInput{TaskType: models.TaskTypePicking, AssignedToID: staff.ID}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(CreateTaskInput{TaskType: models.TaskTypeReceiving, AssignedToID: staff.ID}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	orderID := uint(9999)
	_, err = svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePicking, AssignedToID: staff.ID, OrderID: &orderID,
	}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateTaskValidatesAssignee(t *testing.T) {
	svc, publisher := newTaskService(t)
	order := seedOrderForTask(t, svc)

	manager := models.User{Name: "Manager", Email: "manager@warehouse.local", Role: models.RoleManager, IsActive: true}
	require.NoError(t, svc.db.Create(&manager).Error)

	inactive := models.User{Name: "Gone", Email: "gone@warehouse.local", Role: models.RoleStaff, IsActive: false}
	require.NoError(t, svc.db.Create(&inactive).Error)

	_, err := svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePicking, AssignedToID: manager.ID, OrderID: &order.ID,
	}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePicking, AssignedToID: inactive.ID, OrderID: &order.ID,
	}, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	staff := createTestStaff(t, svc.db, "staff2@warehouse.local")
	task, err := svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePicking, AssignedToID: staff.ID, OrderID: &order.ID,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)

	require.Len(t, publisher.named(events.EventTaskAssigned), 1)
}

func TestTaskLifecycleStampsTimesAndDuration(t *testing.T) {
	svc, publisher := newTaskService(t)
	order := seedOrderForTask(t, svc)
	staff := createTestStaff(t, svc.db, "staff3@warehouse.local")

	task, err := svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePacking, AssignedToID: staff.ID, OrderID: &order.ID,
	}, 1)
	require.NoError(t, err)
	assert.Nil(t, task.StartedAt)

	started, err := svc.TransitionStatus(task.ID, models.TaskStatusInProgress, 1)
	require.NoError(t, err)
	require.NotNil(t, started.StartedAt)

	completed, err := svc.TransitionStatus(task.ID, models.TaskStatusCompleted, 1)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, 0, completed.CompletionMinutes)
	assert.Equal(t, started.StartedAt.Unix(), completed.StartedAt.Unix())

	require.Len(t, publisher.named(events.EventTaskCompleted), 1)

	// completed is terminal.
	_, err = svc.TransitionStatus(task.ID, models.TaskStatusInProgress, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition))
}

func TestTaskTransitionGraph(t *testing.T) {
	svc, _ := newTaskService(t)
	order := seedOrderForTask(t, svc)
	staff := createTestStaff(t, svc.db, "staff4@warehouse.local")

	task, err := svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePicking, AssignedToID: staff.ID, OrderID: &order.ID,
	}, 1)
	require.NoError(t, err)

	// pending cannot complete without being started.
	_, err = svc.TransitionStatus(task.ID, models.TaskStatusCompleted, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition))

	_, err = svc.TransitionStatus(task.ID, "paused", 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	cancelled, err := svc.TransitionStatus(task.ID, models.TaskStatusCancelled, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCancelled, cancelled.Status)
}

func TestReassignTask(t *testing.T) {
	svc, _ := newTaskService(t)
	order := seedOrderForTask(t, svc)
	first := createTestStaff(t, svc.db, "staff5@warehouse.local")
	second := createTestStaff(t, svc.db, "staff6@warehouse.local")

	task, err := svc.Create(CreateTaskInput{
		TaskType: models.TaskTypePicking, AssignedToID: first.ID, OrderID: &order.ID,
	}, 1)
	require.NoError(t, err)

	reassigned, err := svc.Reassign(task.ID, second.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, reassigned.AssignedToID)

	_, err = svc.TransitionStatus(task.ID, models.TaskStatusCancelled, 1)
	require.NoError(t, err)

	_, err = svc.Reassign(task.ID, first.ID, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
