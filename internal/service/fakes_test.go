package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"Inkwell/internal/model"
	"Inkwell/internal/repository"
)

var errStoreDown = errors.New("store down")

// fakePostRepo 内存中的帖子表，记录每个方法的调用次数
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	calls map[string]int
	err   error
	// beforeUpdate 在条件更新前执行，用于模拟并发写入
	beforeUpdate func()
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	r := &fakePostRepo{posts: map[string]*model.Post{}, calls: map[string]int{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) record(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[name]++
	return r.err
}

func (r *fakePostRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *fakePostRepo) writes() int {
	return r.count("InsertPost") + r.count("UpdatePost") + r.count("DeletePost")
}

func (r *fakePostRepo) get(id string) *model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (r *fakePostRepo) FindPost(_ context.Context, id string) (*model.Post, error) {
	if err := r.record("FindPost"); err != nil {
		return nil, err
	}
	return r.get(id), nil
}

func (r *fakePostRepo) FindPostDetail(_ context.Context, id string) (*model.Post, error) {
	if err := r.record("FindPostDetail"); err != nil {
		return nil, err
	}
	p := r.get(id)
	if p != nil && p.Author == nil {
		p.Author = &model.Profile{ID: p.AuthorID, Username: "author"}
	}
	return p, nil
}

func (r *fakePostRepo) FindPublishedBySlug(_ context.Context, slug string) (*model.Post, error) {
	if err := r.record("FindPublishedBySlug"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug && p.IsPublished() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) list(match func(p *model.Post) bool, limit, offset int) []*model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Post
	for _, p := range r.posts {
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*model.Post{}
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *fakePostRepo) ListPublished(_ context.Context, limit, offset int) ([]*model.Post, error) {
	if err := r.record("ListPublished"); err != nil {
		return nil, err
	}
	return r.list(func(p *model.Post) bool { return p.IsPublished() }, limit, offset), nil
}

func (r *fakePostRepo) ListPublishedByTag(_ context.Context, tagSlug string, limit, offset int) ([]*model.Post, error) {
	if err := r.record("ListPublishedByTag"); err != nil {
		return nil, err
	}
	return r.list(func(p *model.Post) bool {
		if !p.IsPublished() {
			return false
		}
		for _, t := range p.Tags {
			if t.Slug == tagSlug {
				return true
			}
		}
		return false
	}, limit, offset), nil
}

func (r *fakePostRepo) ListByAuthor(_ context.Context, authorID string, includeDrafts bool, limit, offset int) ([]*model.Post, error) {
	if err := r.record("ListByAuthor"); err != nil {
		return nil, err
	}
	return r.list(func(p *model.Post) bool {
		return p.AuthorID == authorID && (includeDrafts || p.IsPublished())
	}, limit, offset), nil
}

func (r *fakePostRepo) InsertPost(_ context.Context, post *model.Post, tagNames []string) (*model.Post, error) {
	if err := r.record("InsertPost"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return nil, repository.ErrDuplicateKey
		}
	}
	for _, name := range tagNames {
		post.Tags = append(post.Tags, model.Tag{ID: name, Name: name, Slug: name})
	}
	cp := *post
	r.posts[post.ID] = &cp
	return post, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, id string, patch *model.PostPatch, expectedVersion int) (*model.Post, error) {
	if err := r.record("UpdatePost"); err != nil {
		return nil, err
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	if p.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = patch.Excerpt
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.PublishedAt != nil {
		p.PublishedAt = patch.PublishedAt
	}
	p.Version++
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string, expectedVersion int) error {
	if err := r.record("DeletePost"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) IncrementReadCount(_ context.Context, id string) error {
	if err := r.record("IncrementReadCount"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		p.ReadCount++
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
	calls    int
	err      error
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[string]*model.Profile{}}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) FindProfile(_ context.Context, id string) (*model.Profile, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) FindProfileByUsername(_ context.Context, username string) (*model.Profile, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.profiles {
		if p.Username == username {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) UpdateProfile(_ context.Context, id string, patch *model.ProfilePatch) (*model.Profile, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	if patch.DisplayName != nil {
		p.DisplayName = patch.DisplayName
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	if patch.Bio != nil {
		p.Bio = patch.Bio
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	for _, p := range r.profiles {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	comments map[string]*model.Comment
	deleted  []string
}

func newFakeCommentRepo(comments ...*model.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: map[string]*model.Comment{}}
	for _, cm := range comments {
		r.comments[cm.ID] = cm
	}
	return r
}

func (r *fakeCommentRepo) FindComment(_ context.Context, id string) (*model.Comment, error) {
	cm, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *cm
	return &cp, nil
}

func (r *fakeCommentRepo) ListCommentsByPost(_ context.Context, postID string) ([]*model.Comment, error) {
	var roots []*model.Comment
	for _, cm := range r.comments {
		if cm.PostID == postID && cm.ParentID == nil {
			cp := *cm
			for _, reply := range r.comments {
				if reply.ParentID != nil && *reply.ParentID == cm.ID {
					cp.Replies = append(cp.Replies, *reply)
				}
			}
			roots = append(roots, &cp)
		}
	}
	return roots, nil
}

func (r *fakeCommentRepo) InsertComment(_ context.Context, comment *model.Comment) error {
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) UpdateCommentContent(_ context.Context, id string, content string) (*model.Comment, error) {
	cm, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	cm.Content = content
	cp := *cm
	return &cp, nil
}

func (r *fakeCommentRepo) DeleteComment(_ context.Context, id string) error {
	delete(r.comments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeLikeRepo struct {
	likes map[string]bool
}

func (r *fakeLikeRepo) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	if r.likes == nil {
		r.likes = map[string]bool{}
	}
	key := postID + "/" + userID
	r.likes[key] = !r.likes[key]
	return r.likes[key], nil
}

func (r *fakeLikeRepo) HasLiked(_ context.Context, postID, userID string) (bool, error) {
	return r.likes[postID+"/"+userID], nil
}

func (r *fakeLikeRepo) ReconcileLikeCounts(context.Context) (int64, error) {
	return 0, nil
}

// memorySink 收集写入的审计记录
type memorySink struct {
	mu      sync.Mutex
	records []*model.AuditLog
	err     error
}

func (s *memorySink) AppendAuditRecord(_ context.Context, record *model.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memorySink) ListAuditLogs(_ context.Context, userID, resourceID string, limit int) ([]*model.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.AuditLog
	for _, r := range s.records {
		if (userID == "" || r.UserID == userID) && (resourceID == "" || r.ResourceID == resourceID) {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memorySink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, r := range s.records {
		out = append(out, r.Action)
	}
	return out
}

// countingLimiter 记录调用次数，limited 为 true 时总是拒绝
type countingLimiter struct {
	mu      sync.Mutex
	limited bool
	calls   []string
}

func (l *countingLimiter) IsLimited(_ context.Context, _ string, action string, _ int, _ time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, action)
	return l.limited
}
