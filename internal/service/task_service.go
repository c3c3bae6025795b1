package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

// TaskService 协会任务业务接口
type TaskService interface {
	Create(ctx context.Context, c Caller, schoolID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, schoolID string, req *dto.TaskListRequest) ([]dto.TaskResponse, int64, error)
}

type taskService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, actors: actors, logger: logger}
}

func (s *taskService) Create(ctx context.Context, c Caller, schoolID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionCreateTask, authz.SchoolScope(schoolID)); err != nil {
		return nil, err
	}

	task := &model.AssociationTask{
		TaskID:          uuid.NewString(),
		SchoolID:        schoolID,
		Type:            req.Type,
		Title:           req.Title,
		Description:     req.Description,
		RewardHours:     req.RewardHours,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       actor.UserID,
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("发布协会任务失败", zap.Error(err))
		return nil, err
	}

	resp := taskResponse(task)
	return &resp, nil
}

func (s *taskService) List(ctx context.Context, schoolID string, req *dto.TaskListRequest) ([]dto.TaskResponse, int64, error) {
	tasks, total, err := s.repo.Task.List(ctx, repository.TaskFilter{
		SchoolID: schoolID,
		Type:     req.Type,
		Offset:   req.GetOffset(),
		Limit:    req.GetPageSize(),
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, taskResponse(&tasks[i]))
	}
	return result, total, nil
}

func taskResponse(t *model.AssociationTask) dto.TaskResponse {
	return dto.TaskResponse{
		ID:              t.TaskID,
		SchoolID:        t.SchoolID,
		Type:            t.Type,
		Title:           t.Title,
		Description:     t.Description,
		RewardHours:     t.RewardHours,
		MaxParticipants: t.MaxParticipants,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}
