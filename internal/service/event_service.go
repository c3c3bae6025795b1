package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/redis"
)

var ErrEventNotFound = errors.New("系统事件不存在")

// 紧急角标缓存 TTL：短缓存换直连计数压力
const urgentBadgeTTL = 30 * time.Second

// EventService 系统事件业务接口
type EventService interface {
	Raise(ctx context.Context, c Caller, req *dto.RaiseEventRequest) (*dto.EventResponse, error)
	List(ctx context.Context, c Caller, req *dto.EventListRequest) ([]dto.EventResponse, int64, error)
	Transition(ctx context.Context, c Caller, id string, req *dto.TransitionEventRequest) (*dto.EventResponse, error)
	UrgentCount(ctx context.Context, c Caller) (*dto.UrgentCountResponse, error)
}

type eventService struct {
	repo   *repository.Repository
	actors ActorResolver
	cache  *redis.Client
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, actors ActorResolver, cache *redis.Client, logger *zap.Logger) EventService {
	return &eventService{repo: repo, actors: actors, cache: cache, logger: logger}
}

func (s *eventService) authorize(ctx context.Context, c Caller) (*authz.Actor, error) {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionManageEvents, authz.GlobalScope()); err != nil {
		return nil, err
	}
	return actor, nil
}

func (s *eventService) Raise(ctx context.Context, c Caller, req *dto.RaiseEventRequest) (*dto.EventResponse, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	event := &model.SystemEvent{
		EventID: uuid.NewString(),
		Group:   req.Group,
		Title:   req.Title,
		Detail:  req.Detail,
		Level:   req.Level,
		Status:  model.EventStatusOpen,
	}
	if err := s.repo.SystemEvent.Create(ctx, event); err != nil {
		s.logger.Error("上报系统事件失败", zap.Error(err))
		return nil, err
	}
	s.invalidateBadge(ctx)

	resp := eventResponse(event)
	return &resp, nil
}

func (s *eventService) List(ctx context.Context, c Caller, req *dto.EventListRequest) ([]dto.EventResponse, int64, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, 0, err
	}

	events, total, err := s.repo.SystemEvent.List(ctx, repository.EventFilter{
		Group:  req.Group,
		Status: req.Status,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, eventResponse(&events[i]))
	}
	return result, total, nil
}

func (s *eventService) Transition(ctx context.Context, c Caller, id string, req *dto.TransitionEventRequest) (*dto.EventResponse, error) {
	actor, err := s.authorize(ctx, c)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.SystemEvent.Transition(ctx, id, req.Status, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		// ErrInvalidTransition 原样透传
		return nil, err
	}
	s.invalidateBadge(ctx)

	resp := eventResponse(event)
	return &resp, nil
}

func (s *eventService) UrgentCount(ctx context.Context, c Caller) (*dto.UrgentCountResponse, error) {
	if _, err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if count, err := s.cache.GetUrgentBadge(ctx); err == nil && count >= 0 {
			return &dto.UrgentCountResponse{Count: count}, nil
		}
	}

	count, err := s.repo.SystemEvent.CountOpenUrgent(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetUrgentBadge(ctx, count, urgentBadgeTTL); err != nil {
			s.logger.Warn("角标缓存写入失败", zap.Error(err))
		}
	}
	return &dto.UrgentCountResponse{Count: count}, nil
}

// invalidateBadge 缓存失效失败只记日志，读路径会降级直查
func (s *eventService) invalidateBadge(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUrgentBadge(ctx); err != nil {
		s.logger.Warn("角标缓存失效失败", zap.Error(err))
	}
}

func eventResponse(e *model.SystemEvent) dto.EventResponse {
	resp := dto.EventResponse{
		ID:        e.EventID,
		Group:     e.Group,
		Title:     e.Title,
		Detail:    e.Detail,
		Level:     e.Level,
		Status:    e.Status,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
	if e.HandledBy != nil {
		resp.HandledBy = *e.HandledBy
	}
	if e.HandledAt != nil {
		resp.HandledAt = e.HandledAt.Format(time.RFC3339)
	}
	return resp
}
