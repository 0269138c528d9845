package announcements

import (
	"context"

	"github.com/google/uuid"

	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
)

// Input carries the writable announcement fields.
type Input struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=info warning maintenance"`
	Priority int    `json:"priority" validate:"min=0,max=100"`
	IsActive bool   `json:"isActive"`
}

// Service exposes announcements to the portal and to admins.
type Service interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
	ListAll(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, authorID uuid.UUID, input Input) (*models.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListActive(ctx context.Context) ([]models.Announcement, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list announcements")
	}
	return list, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Announcement, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list announcements")
	}
	return list, nil
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input Input) (*models.Announcement, error) {
	kind, err := enums.ParseAnnouncementType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown announcement type")
	}

	announcement := &models.Announcement{
		Title:    input.Title,
		Content:  input.Content,
		Type:     kind,
		Priority: input.Priority,
		IsActive: input.IsActive,
	}
	if authorID != uuid.Nil {
		announcement.CreatedBy = &authorID
	}
	created, err := s.repo.Create(ctx, announcement)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create announcement")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Announcement, error) {
	kind, err := enums.ParseAnnouncementType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown announcement type")
	}

	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load announcement")
	}
	if announcement == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
	}

	announcement.Title = input.Title
	announcement.Content = input.Content
	announcement.Type = kind
	announcement.Priority = input.Priority
	announcement.IsActive = input.IsActive

	if err := s.repo.Update(ctx, announcement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update announcement")
	}
	return announcement, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete announcement")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
	}
	return nil
}
