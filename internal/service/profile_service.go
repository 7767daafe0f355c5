package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"regexp"

	"github.com/jinzhu/copier"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*dto.ProfileDTO, error)
	GetCurrentProfile(ctx context.Context, userID string) (*dto.CurrentProfileDTO, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*dto.CurrentProfileDTO, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type profileServiceImpl struct {
	profileRepo repository.ProfileRepo
	auditLogger AuditLogger
}

func NewProfileService(profileRepo repository.ProfileRepo, auditLogger AuditLogger) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		auditLogger: auditLogger,
	}
}

// GetProfile 用户主页，附带已发布的帖子
func (s *profileServiceImpl) GetProfile(ctx context.Context, username string) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.FindProfileByUsername(ctx, username)
	if err != nil {
		return nil, persistenceErr("find profile", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return toProfileDTO(profile), nil
}

func (s *profileServiceImpl) GetCurrentProfile(ctx context.Context, userID string) (*dto.CurrentProfileDTO, error) {
	profile, err := s.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, persistenceErr("find profile", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return toCurrentProfileDTO(profile), nil
}

// UpdateProfile 权限标记不可通过此接口修改
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileDTO) (*dto.CurrentProfileDTO, error) {
	patch := &model.ProfilePatch{}
	if err := copier.Copy(patch, req); err != nil {
		return nil, ErrParamInvalid
	}
	if patch.DisplayName != nil {
		displayName := security.SanitizeContent(*patch.DisplayName)
		patch.DisplayName = &displayName
	}
	if patch.Bio != nil {
		bio := security.SanitizeContent(*patch.Bio)
		patch.Bio = &bio
	}

	profile, err := s.profileRepo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, persistenceErr("update profile", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionUpdate, model.AuditResourceProfile, userID, nil)
	return toCurrentProfileDTO(profile), nil
}

func (s *profileServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	if !usernamePattern.MatchString(username) {
		return false, ErrUsernameInvalid
	}
	exists, err := s.profileRepo.UsernameExists(ctx, username)
	if err != nil {
		return false, persistenceErr("check username", err)
	}
	return !exists, nil
}

func toCurrentProfileDTO(profile *model.Profile) *dto.CurrentProfileDTO {
	return &dto.CurrentProfileDTO{
		ProfileDTO:  *toProfileDTO(profile),
		CanPublish:  profile.CanPublish,
		IsModerator: profile.IsModerator,
		IsAdmin:     profile.IsAdmin,
	}
}
