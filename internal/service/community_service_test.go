package service_test

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/ratelimit"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"
)

type communityFixture struct {
	posts    *fakePostRepo
	profiles *fakeProfileRepo
	comments *fakeCommentRepo
	likes    *fakeLikeRepo
	sink     *memorySink
	limiter  *countingLimiter

	commentSvc service.CommentService
	likeSvc    service.LikeService
	profileSvc service.ProfileService
}

func newCommunityFixture(comments ...*model.Comment) *communityFixture {
	f := &communityFixture{
		posts: newFakePostRepo(
			newPost("published", model.PostStatusPublished),
			newPost("draft", model.PostStatusDraft),
		),
		profiles: newFakeProfileRepo(testProfiles()...),
		comments: newFakeCommentRepo(comments...),
		likes:    &fakeLikeRepo{},
		sink:     &memorySink{},
		limiter:  &countingLimiter{},
	}
	permissionSvc := service.NewPermissionService(f.posts, f.profiles)
	auditLogger := service.NewAuditLogger(permissionSvc, f.sink, f.sink)
	f.commentSvc = service.NewCommentService(f.comments, permissionSvc, auditLogger, f.limiter, ratelimit.DefaultPolicies)
	f.likeSvc = service.NewLikeService(f.likes, permissionSvc, f.limiter, ratelimit.DefaultPolicies)
	f.profileSvc = service.NewProfileService(f.profiles, auditLogger)
	return f
}

func TestCommentService_CreateComment(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	rootID := "c-root"
	f := newCommunityFixture(
		&model.Comment{ID: rootID, PostID: "published", AuthorID: authorID, Content: "root", CreatedAt: time.Now()},
		&model.Comment{ID: "c-reply", PostID: "published", AuthorID: otherID, ParentID: &rootID, Content: "reply"},
		&model.Comment{ID: "c-elsewhere", PostID: "draft", AuthorID: authorID, Content: "draft note"},
	)

	comment, err := f.commentSvc.CreateComment(ctx, "published", otherID, &dto.CreateCommentDTO{Content: "Nice <script>x()</script>post"})
	c.Assert(err, qt.IsNil)
	c.Assert(comment.Content, qt.Equals, "Nice post")
	c.Assert(comment.ParentID, qt.IsNil)
	c.Assert(f.limiter.calls, qt.DeepEquals, []string{ratelimit.ActionCreateComment})

	// 回复一条回复时挂到顶层评论下
	reply, err := f.commentSvc.CreateComment(ctx, "published", otherID, &dto.CreateCommentDTO{Content: "deeper", ParentID: strPtr("c-reply")})
	c.Assert(err, qt.IsNil)
	c.Assert(*reply.ParentID, qt.Equals, rootID)

	_, err = f.commentSvc.CreateComment(ctx, "published", otherID, &dto.CreateCommentDTO{Content: "cross", ParentID: strPtr("c-elsewhere")})
	c.Assert(err, qt.ErrorIs, service.ErrCommentParentInvalid)

	_, err = f.commentSvc.CreateComment(ctx, "draft", otherID, &dto.CreateCommentDTO{Content: "hidden"})
	c.Assert(err, qt.ErrorIs, service.ErrAccessDenied)

	_, err = f.commentSvc.CreateComment(ctx, "published", otherID, &dto.CreateCommentDTO{Content: "   "})
	var verr *service.ValidationError
	c.Assert(err, qt.ErrorAs, &verr)
	c.Assert(verr.Errors, qt.DeepEquals, []string{security.MsgCommentEmpty})

	f.limiter.limited = true
	_, err = f.commentSvc.CreateComment(ctx, "published", otherID, &dto.CreateCommentDTO{Content: "again"})
	c.Assert(err, qt.ErrorIs, service.ErrRateLimited)
}

func TestCommentService_UpdateAndDelete(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newCommunityFixture(
		&model.Comment{ID: "c1", PostID: "published", AuthorID: otherID, Content: "first"},
		&model.Comment{ID: "c2", PostID: "published", AuthorID: otherID, Content: "second"},
	)

	_, err := f.commentSvc.UpdateComment(ctx, "c1", authorID, &dto.UpdateCommentDTO{Content: "hijack"})
	c.Assert(err, qt.ErrorIs, service.ErrAccessDenied)

	updated, err := f.commentSvc.UpdateComment(ctx, "c1", otherID, &dto.UpdateCommentDTO{Content: "edited"})
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Content, qt.Equals, "edited")

	_, err = f.commentSvc.UpdateComment(ctx, "missing", otherID, &dto.UpdateCommentDTO{Content: "edited"})
	c.Assert(err, qt.ErrorIs, service.ErrCommentNotFound)

	c.Assert(f.commentSvc.DeleteComment(ctx, "c1", authorID), qt.ErrorIs, service.ErrAccessDenied)
	c.Assert(f.commentSvc.DeleteComment(ctx, "c1", otherID), qt.IsNil)
	c.Assert(f.commentSvc.DeleteComment(ctx, "c2", moderatorID), qt.IsNil)
	c.Assert(f.comments.deleted, qt.DeepEquals, []string{"c1", "c2"})
	c.Assert(f.sink.actions(), qt.DeepEquals, []string{model.AuditActionUpdate, model.AuditActionDelete, model.AuditActionDelete})
}

func TestCommentService_ListComments(t *testing.T) {
	c := qt.New(t)
	rootID := "c-root"
	f := newCommunityFixture(
		&model.Comment{ID: rootID, PostID: "published", AuthorID: authorID, Content: "root"},
		&model.Comment{ID: "c-reply", PostID: "published", AuthorID: otherID, ParentID: &rootID, Content: "reply"},
	)

	comments, err := f.commentSvc.ListComments(context.Background(), "published", "")
	c.Assert(err, qt.IsNil)
	c.Assert(comments, qt.HasLen, 1)
	c.Assert(comments[0].Replies, qt.HasLen, 1)
	c.Assert(comments[0].Replies[0].Content, qt.Equals, "reply")

	_, err = f.commentSvc.ListComments(context.Background(), "draft", otherID)
	c.Assert(err, qt.ErrorIs, service.ErrAccessDenied)
}

func TestLikeService_ToggleLike(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newCommunityFixture()

	liked, err := f.likeSvc.ToggleLike(ctx, "published", otherID)
	c.Assert(err, qt.IsNil)
	c.Assert(liked, qt.IsTrue)

	has, err := f.likeSvc.HasLiked(ctx, "published", otherID)
	c.Assert(err, qt.IsNil)
	c.Assert(has, qt.IsTrue)

	liked, err = f.likeSvc.ToggleLike(ctx, "published", otherID)
	c.Assert(err, qt.IsNil)
	c.Assert(liked, qt.IsFalse)

	_, err = f.likeSvc.ToggleLike(ctx, "draft", otherID)
	c.Assert(err, qt.ErrorIs, service.ErrAccessDenied)

	f.limiter.limited = true
	_, err = f.likeSvc.ToggleLike(ctx, "published", otherID)
	c.Assert(err, qt.ErrorIs, service.ErrRateLimited)
}

func TestProfileService(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newCommunityFixture()

	profile, err := f.profileSvc.GetProfile(ctx, "author")
	c.Assert(err, qt.IsNil)
	c.Assert(profile.ID, qt.Equals, authorID)

	_, err = f.profileSvc.GetProfile(ctx, "nobody")
	c.Assert(err, qt.ErrorIs, service.ErrProfileNotFound)

	current, err := f.profileSvc.UpdateProfile(ctx, otherID, &dto.UpdateProfileDTO{
		DisplayName: strPtr("Other <script>x</script>Person"),
		Bio:         strPtr("writes things"),
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*current.DisplayName, qt.Equals, "Other Person")
	c.Assert(*current.Bio, qt.Equals, "writes things")
	c.Assert(current.CanPublish, qt.IsFalse)
	c.Assert(current.IsModerator, qt.IsFalse)
	c.Assert(f.sink.actions(), qt.DeepEquals, []string{model.AuditActionUpdate})

	current, err = f.profileSvc.GetCurrentProfile(ctx, authorID)
	c.Assert(err, qt.IsNil)
	c.Assert(current.CanPublish, qt.IsTrue)

	available, err := f.profileSvc.IsUsernameAvailable(ctx, "author")
	c.Assert(err, qt.IsNil)
	c.Assert(available, qt.IsFalse)

	available, err = f.profileSvc.IsUsernameAvailable(ctx, "fresh_name")
	c.Assert(err, qt.IsNil)
	c.Assert(available, qt.IsTrue)

	_, err = f.profileSvc.IsUsernameAvailable(ctx, "no spaces!")
	c.Assert(err, qt.ErrorIs, service.ErrUsernameInvalid)
}
