package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
	repo "github.com/snapsite/snapsite-backend/internal/domain/repository"
)

// publicListLimit caps the public templates listing.
const publicListLimit = 50

var (
	ErrAlreadyInWishlist = errors.New("template already in wishlist")
	ErrWishlistNotFound  = errors.New("template not found in wishlist")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrExportNotFound    = errors.New("export not found")
)

// TemplateService implements the wishlist, saved template, and export log
// operations. Each method is a single store operation plus ownership checks;
// the store's per-document atomicity is all the coordination there is.
type TemplateService struct {
	Wishlist  repo.WishlistRepository
	Templates repo.TemplateRepository
	Exports   repo.ExportRepository
	Logger    *logrus.Logger
}

func NewTemplateService(wl repo.WishlistRepository, tpl repo.TemplateRepository, exp repo.ExportRepository, logger *logrus.Logger) *TemplateService {
	return &TemplateService{Wishlist: wl, Templates: tpl, Exports: exp, Logger: logger}
}

// ---- wishlist ----

type WishlistInput struct {
	TemplateSlug      string
	TemplateName      string
	TemplateThumbnail string
	TemplateCategory  string
}

func (s *TemplateService) AddToWishlist(ctx context.Context, userID string, in WishlistInput) (*entity.WishlistEntry, error) {
	exists, err := s.Wishlist.Exists(ctx, userID, in.TemplateSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInWishlist
	}
	e := &entity.WishlistEntry{
		UserID:            userID,
		TemplateSlug:      in.TemplateSlug,
		TemplateName:      in.TemplateName,
		TemplateThumbnail: in.TemplateThumbnail,
		TemplateCategory:  in.TemplateCategory,
	}
	if err := s.Wishlist.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrDuplicateWishlist) {
			return nil, ErrAlreadyInWishlist
		}
		return nil, err
	}
	return e, nil
}

func (s *TemplateService) RemoveFromWishlist(ctx context.Context, userID, slug string) error {
	if err := s.Wishlist.DeleteBySlug(ctx, userID, slug); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrWishlistNotFound
		}
		return err
	}
	return nil
}

func (s *TemplateService) ListWishlist(ctx context.Context, userID string) ([]entity.WishlistEntry, error) {
	return s.Wishlist.ListByUser(ctx, userID)
}

// InWishlist never fails on absence; it answers false.
func (s *TemplateService) InWishlist(ctx context.Context, userID, slug string) (bool, error) {
	return s.Wishlist.Exists(ctx, userID, slug)
}

// ---- saved templates ----

type SaveTemplateInput struct {
	Name                 string
	OriginalTemplateSlug string
	Layout               []any
	Thumbnail            string // already resolved by the handler
	IsPublic             bool
}

func (s *TemplateService) SaveTemplate(ctx context.Context, userID string, in SaveTemplateInput) (*entity.SavedTemplate, error) {
	t := &entity.SavedTemplate{
		UserID:               userID,
		Name:                 in.Name,
		OriginalTemplateSlug: in.OriginalTemplateSlug,
		Layout:               in.Layout,
		Thumbnail:            in.Thumbnail,
		IsPublic:             in.IsPublic,
	}
	if err := s.Templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) OwnTemplates(ctx context.Context, userID string) ([]entity.SavedTemplate, error) {
	return s.Templates.ListByUser(ctx, userID)
}

func (s *TemplateService) PublicTemplates(ctx context.Context) ([]entity.SavedTemplate, error) {
	return s.Templates.ListPublic(ctx, publicListLimit)
}

// GetTemplate returns the template when it is public or owned by viewerID.
// viewerID is empty for anonymous callers, who only see public templates.
func (s *TemplateService) GetTemplate(ctx context.Context, id, viewerID string) (*entity.SavedTemplate, error) {
	t, err := s.Templates.GetVisible(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id, userID string, patch repo.TemplatePatch) (*entity.SavedTemplate, error) {
	t, err := s.Templates.Update(ctx, id, userID, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) UpdateVisibility(ctx context.Context, id, userID string, isPublic bool) (*entity.SavedTemplate, error) {
	return s.UpdateTemplate(ctx, id, userID, repo.TemplatePatch{IsPublic: &isPublic})
}

func (s *TemplateService) UpdateThumbnail(ctx context.Context, id, userID, thumbnail string) (*entity.SavedTemplate, error) {
	return s.UpdateTemplate(ctx, id, userID, repo.TemplatePatch{Thumbnail: &thumbnail})
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id, userID string) error {
	if err := s.Templates.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}

// ---- export log ----

type RecordExportInput struct {
	Name       string
	ExportType string
	Status     string
	FileSize   *int64
	Layout     []any
}

func (s *TemplateService) RecordExport(ctx context.Context, userID string, in RecordExportInput) (*entity.ExportedTemplate, error) {
	status := in.Status
	if status == "" {
		status = entity.ExportStatusCompleted
	}
	e := &entity.ExportedTemplate{
		UserID:     userID,
		Name:       in.Name,
		ExportType: in.ExportType,
		Status:     status,
		FileSize:   in.FileSize,
		Layout:     in.Layout,
	}
	if err := s.Exports.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TemplateService) ListExports(ctx context.Context, userID string) ([]entity.ExportedTemplate, error) {
	return s.Exports.ListByUser(ctx, userID)
}

func (s *TemplateService) DeleteExport(ctx context.Context, id, userID string) error {
	if err := s.Exports.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrExportNotFound
		}
		return err
	}
	return nil
}
