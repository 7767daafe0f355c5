package service_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/service"
)

type fakeTagRepo struct {
	tags []*model.Tag
	err  error
}

func (r *fakeTagRepo) ListTags(context.Context) ([]*model.Tag, error) {
	return r.tags, r.err
}

func TestTagService_ListTags(t *testing.T) {
	c := qt.New(t)
	repo := &fakeTagRepo{tags: []*model.Tag{
		{ID: "t1", Name: "Go", Slug: "go"},
		{ID: "t2", Name: "Newsletters", Slug: "newsletters"},
	}}

	tags, err := service.NewTagService(repo).ListTags(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(tags, qt.DeepEquals, []*dto.TagDTO{
		{ID: "t1", Name: "Go", Slug: "go"},
		{ID: "t2", Name: "Newsletters", Slug: "newsletters"},
	})

	repo.err = errStoreDown
	_, err = service.NewTagService(repo).ListTags(context.Background())
	var pe *service.PersistenceError
	c.Assert(err, qt.ErrorAs, &pe)
	c.Assert(err, qt.ErrorIs, errStoreDown)
}
