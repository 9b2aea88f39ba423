package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"
)

const maxGroupTitleLen = 128

type GroupService struct {
	groupRepo repository.GroupRepository
	isAdmin   func(ctx context.Context, userID uint) (bool, error)
}

type CreateGroupInput struct {
	UserID      uint
	Title       string
	Slug        string
	Description string
}

type DeleteGroupInput struct {
	UserID  uint
	GroupID uint
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		isAdmin:   isAdmin,
	}
}

func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *GroupService) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxGroupTitleLen {
		return nil, models.NewValidationError("Title too long (max 128 characters)")
	}

	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if err := validation.ValidateGroupSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: in.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, in DeleteGroupInput) error {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return err
	}
	if _, err := s.groupRepo.GetByID(ctx, in.GroupID); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, in.GroupID)
}

func (s *GroupService) requireAdmin(ctx context.Context, userID uint) error {
	if s.isAdmin == nil {
		return models.NewUnauthorizedError("Only administrators can manage groups")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewUnauthorizedError("Only administrators can manage groups")
	}
	return nil
}
