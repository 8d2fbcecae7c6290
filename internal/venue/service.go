package venue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/storage"
)

// CoverSize selects which rendition of the cover photo to read.
type CoverSize string

const (
	CoverFull      CoverSize = "full"
	CoverThumbnail CoverSize = "thumb"
)

// Service manages venues and their pricing configuration.
type Service interface {
	Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, actor auth.Principal, id string, in UpdateInput) (*Venue, error)
	Delete(ctx context.Context, actor auth.Principal, id string) error
	UploadCover(ctx context.Context, actor auth.Principal, id string, content io.Reader) (*Venue, error)
	OpenCover(ctx context.Context, id string, size CoverSize) (io.ReadCloser, error)
}

type service struct {
	repo     Repository
	store    storage.Storage
	validate *validator.Validate
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{repo: repo, store: store, validate: newValidator()}
}

func (s *service) Create(ctx context.Context, actor auth.Principal, in CreateInput) (*Venue, error) {
	// 1. Field-level validation
	if err := s.validate.Struct(in); err != nil {
		return nil, describe(err)
	}

	// 2. Build and check the whole configuration
	open, _ := availability.ParseClock(in.OpenTime)
	closing, _ := availability.ParseClock(in.CloseTime)
	v := &Venue{
		ID:               uuid.NewString(),
		OwnerID:          actor.UserID,
		Name:             in.Name,
		Description:      in.Description,
		Capacity:         in.Capacity,
		OpenMinute:       open,
		CloseMinute:      closing,
		SlotWidthMinutes: in.SlotWidthMinutes,
		Pricing:          in.Pricing,
	}
	if v.SlotWidthMinutes == 0 {
		v.SlotWidthMinutes = availability.DefaultSlotWidthMinutes
	}
	if err := checkConfig(v); err != nil {
		return nil, err
	}

	// 3. Persist
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *service) getManaged(ctx context.Context, actor auth.Principal, id string) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.ManagedBy(actor) {
		return nil, ErrForbidden
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, actor auth.Principal, id string, in UpdateInput) (*Venue, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, describe(err)
	}

	v, err := s.getManaged(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.Capacity != nil {
		v.Capacity = *in.Capacity
	}
	if in.OpenTime != nil {
		v.OpenMinute, _ = availability.ParseClock(*in.OpenTime)
	}
	if in.CloseTime != nil {
		v.CloseMinute, _ = availability.ParseClock(*in.CloseTime)
	}
	if in.SlotWidthMinutes != nil {
		v.SlotWidthMinutes = *in.SlotWidthMinutes
	}
	if in.Pricing != nil {
		v.Pricing = *in.Pricing
	}

	// Partial updates can still break cross-field rules such as open < close.
	if err := checkConfig(v); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Principal, id string) error {
	v, err := s.getManaged(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFiles(ctx, v.CoverPath, v.ThumbnailPath)
	return nil
}

func (s *service) UploadCover(ctx context.Context, actor auth.Principal, id string, content io.Reader) (*Venue, error) {
	v, err := s.getManaged(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	img, err := storage.ProcessCover(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	photoID := uuid.NewString()
	coverPath := fmt.Sprintf("venues/%s/%s.jpg", v.ID, photoID)
	thumbPath := fmt.Sprintf("venues/%s/%s_thumb.jpg", v.ID, photoID)

	if err := s.store.Save(ctx, coverPath, bytes.NewReader(img.Cover)); err != nil {
		return nil, fmt.Errorf("failed to store cover: %w", err)
	}
	if err := s.store.Save(ctx, thumbPath, bytes.NewReader(img.Thumbnail)); err != nil {
		s.removeFiles(ctx, &coverPath)
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	oldCover, oldThumb := v.CoverPath, v.ThumbnailPath
	v.CoverPath, v.ThumbnailPath = &coverPath, &thumbPath
	if err := s.repo.Update(ctx, v); err != nil {
		s.removeFiles(ctx, &coverPath, &thumbPath)
		return nil, err
	}

	s.removeFiles(ctx, oldCover, oldThumb)
	return v, nil
}

func (s *service) OpenCover(ctx context.Context, id string, size CoverSize) (io.ReadCloser, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path := v.CoverPath
	if size == CoverThumbnail {
		path = v.ThumbnailPath
	}
	if path == nil {
		return nil, ErrNoCover
	}

	rc, err := s.store.Get(ctx, *path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoCover
	}
	return rc, err
}

// removeFiles is best effort; orphans only cost disk space.
func (s *service) removeFiles(ctx context.Context, paths ...*string) {
	for _, p := range paths {
		if p == nil {
			continue
		}
		if err := s.store.Delete(ctx, *p); err != nil {
			slog.WarnContext(ctx, "failed to remove venue file", "path", *p, "err", err)
		}
	}
}
