package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/repository"
	"context"
)

type TagService interface {
	ListTags(ctx context.Context) ([]*dto.TagDTO, error)
}

type tagServiceImpl struct {
	tagRepo repository.TagRepo
}

func NewTagService(tagRepo repository.TagRepo) TagService {
	return &tagServiceImpl{tagRepo: tagRepo}
}

func (s *tagServiceImpl) ListTags(ctx context.Context) ([]*dto.TagDTO, error) {
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, persistenceErr("list tags", err)
	}
	out := make([]*dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		out = append(out, &dto.TagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return out, nil
}
