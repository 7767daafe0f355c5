package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"

	"github.com/jinzhu/copier"
)

func toProfileBriefDTO(profile *model.Profile) *dto.ProfileBriefDTO {
	if profile == nil {
		return nil
	}
	out := &dto.ProfileBriefDTO{}
	_ = copier.Copy(out, profile)
	return out
}

func toTagDTOs(tags []model.Tag) []*dto.TagDTO {
	out := make([]*dto.TagDTO, 0, len(tags))
	for i := range tags {
		item := &dto.TagDTO{}
		_ = copier.Copy(item, &tags[i])
		out = append(out, item)
	}
	return out
}

// ToPostDTO 帖子详情，评论按一级结构输出
func ToPostDTO(post *model.Post) *dto.PostDTO {
	out := &dto.PostDTO{}
	_ = copier.Copy(out, post)
	out.Author = toProfileBriefDTO(post.Author)
	out.Tags = toTagDTOs(post.Tags)
	if len(post.Comments) > 0 {
		out.Comments = make([]*dto.CommentDTO, 0, len(post.Comments))
		for i := range post.Comments {
			out.Comments = append(out.Comments, toCommentDTO(&post.Comments[i]))
		}
	}
	return out
}

func toPostSummaryDTO(post *model.Post) *dto.PostSummaryDTO {
	out := &dto.PostSummaryDTO{}
	_ = copier.Copy(out, post)
	out.Author = toProfileBriefDTO(post.Author)
	out.Tags = toTagDTOs(post.Tags)
	return out
}

func toPostSummaryDTOs(posts []*model.Post) []*dto.PostSummaryDTO {
	out := make([]*dto.PostSummaryDTO, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostSummaryDTO(post))
	}
	return out
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	out := &dto.CommentDTO{}
	_ = copier.Copy(out, comment)
	out.Author = toProfileBriefDTO(comment.Author)
	if len(comment.Replies) > 0 {
		out.Replies = make([]*dto.CommentDTO, 0, len(comment.Replies))
		for i := range comment.Replies {
			out.Replies = append(out.Replies, toCommentDTO(&comment.Replies[i]))
		}
	}
	return out
}

func toProfileDTO(profile *model.Profile) *dto.ProfileDTO {
	out := &dto.ProfileDTO{}
	_ = copier.Copy(out, profile)
	if len(profile.Posts) > 0 {
		out.Posts = make([]*dto.PostSummaryDTO, 0, len(profile.Posts))
		for i := range profile.Posts {
			out.Posts = append(out.Posts, toPostSummaryDTO(&profile.Posts[i]))
		}
	}
	return out
}
