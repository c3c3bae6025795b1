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
)

var ErrTagNotFound = errors.New("标签不存在")

// TagService 标签字典业务接口
type TagService interface {
	ListEnabled(ctx context.Context) ([]dto.TagResponse, error)
	ListAll(ctx context.Context, c Caller) ([]dto.TagResponse, error)
	Create(ctx context.Context, c Caller, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	Update(ctx context.Context, c Caller, id string, req *dto.UpdateTagRequest) (*dto.TagResponse, error)
	Delete(ctx context.Context, c Caller, id string) error
}

type tagService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewTagService 创建 TagService 实例
func NewTagService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) TagService {
	return &tagService{repo: repo, actors: actors, logger: logger}
}

func (s *tagService) authorize(ctx context.Context, c Caller) error {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return err
	}
	return authz.Authorize(actor, authz.ActionManageTags, authz.GlobalScope())
}

func (s *tagService) ListEnabled(ctx context.Context) ([]dto.TagResponse, error) {
	tags, err := s.repo.Tag.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	return tagResponses(tags), nil
}

func (s *tagService) ListAll(ctx context.Context, c Caller) ([]dto.TagResponse, error) {
	if err := s.authorize(ctx, c); err != nil {
		return nil, err
	}
	tags, err := s.repo.Tag.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return tagResponses(tags), nil
}

func (s *tagService) Create(ctx context.Context, c Caller, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	tag := &model.Tag{
		TagID:    uuid.NewString(),
		Name:     req.Name,
		Category: req.Category,
		Enabled:  true,
	}
	if req.Enabled != nil {
		tag.Enabled = *req.Enabled
	}
	if err := s.repo.Tag.Create(ctx, tag); err != nil {
		s.logger.Error("创建标签失败", zap.Error(err))
		return nil, err
	}
	resp := tagResponse(tag)
	return &resp, nil
}

func (s *tagService) Update(ctx context.Context, c Caller, id string, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	if err := s.authorize(ctx, c); err != nil {
		return nil, err
	}

	tag, err := s.repo.Tag.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Enabled != nil {
		tag.Enabled = *req.Enabled
	}
	if err := s.repo.Tag.Update(ctx, tag); err != nil {
		return nil, err
	}
	resp := tagResponse(tag)
	return &resp, nil
}

func (s *tagService) Delete(ctx context.Context, c Caller, id string) error {
	if err := s.authorize(ctx, c); err != nil {
		return err
	}
	if err := s.repo.Tag.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}

func tagResponse(t *model.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:        t.TagID,
		Name:      t.Name,
		Category:  t.Category,
		Enabled:   t.Enabled,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func tagResponses(tags []model.Tag) []dto.TagResponse {
	result := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		result = append(result, tagResponse(&tags[i]))
	}
	return result
}
