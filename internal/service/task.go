package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-task-manager/internal/core/cache"
	"go-task-manager/internal/domain"
	"go-task-manager/pkg/utils"
)

type TaskService struct {
	tasks    domain.TaskRepository
	cache    *cache.Cache // 可为 nil（未配置 redis）
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewTaskService(tasks domain.TaskRepository, c *cache.Cache, cacheTTL time.Duration, log *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, cache: c, cacheTTL: cacheTTL, log: log}
}

func taskListKey(ownerID string) string { return "tasks:" + ownerID }

func (s *TaskService) Create(ctx context.Context, ownerID string, in domain.TaskDraft) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.ErrMissingTitle
	}
	status := domain.StatusPending
	if in.Status != "" {
		status = domain.TaskStatus(in.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	priority := domain.PriorityLow
	if in.Priority != "" {
		priority = domain.TaskPriority(in.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
	}

	t := &domain.Task{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		OwnerID:     ownerID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	s.log.Debug("task created", zap.String("id", t.ID), zap.String("owner", ownerID))
	return t, nil
}

// ListAll 按创建时间倒序；配置了 redis 时走读穿缓存
func (s *TaskService) ListAll(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if s.cache == nil {
		return s.tasks.ListByOwner(ctx, ownerID)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, taskListKey(ownerID), s.cacheTTL,
		func(ctx context.Context) ([]domain.Task, error) {
			return s.tasks.ListByOwner(ctx, ownerID)
		})
}

// ListByStatus 过滤值必须严格等于 "Pending" 或 "Completed"（大小写敏感）
func (s *TaskService) ListByStatus(ctx context.Context, ownerID, status string) ([]domain.Task, error) {
	st := domain.TaskStatus(status)
	if !st.Valid() {
		return nil, domain.ErrInvalidStatusFilter
	}
	return s.tasks.ListByOwnerAndStatus(ctx, ownerID, st)
}

// Update 不存在与非本人持有合并为同一个错误，避免向非属主暴露任务是否存在
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.OwnerID != ownerID {
		return nil, domain.ErrNotAuthorizedOrMissing
	}

	if patch.Title != "" {
		t.Title = patch.Title
	}
	if patch.Description != "" {
		t.Description = patch.Description
	}
	if patch.Status != "" {
		st := domain.TaskStatus(patch.Status)
		if !st.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		t.Status = st
	}
	if patch.Priority != "" {
		pr := domain.TaskPriority(patch.Priority)
		if !pr.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		t.Priority = pr
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return t, nil
}

// Delete 与 Update 的错误策略不对称：404 与 403 拆开返回（既有接口行为）
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrTaskNotFound
	}
	if t.OwnerID != ownerID {
		return domain.ErrNotTaskOwner
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

func (s *TaskService) invalidate(ctx context.Context, ownerID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, taskListKey(ownerID))
	}
}
