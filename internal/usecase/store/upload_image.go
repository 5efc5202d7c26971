package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/cache"
	domain "github.com/goofitre/carcare-api/internal/domain/store"
	"github.com/goofitre/carcare-api/internal/domain/user"
	"github.com/goofitre/carcare-api/internal/httperr"
	"github.com/goofitre/carcare-api/internal/media"
)

type UploadStoreImageInput struct {
	Actor   user.Actor
	StoreID string
	File    io.Reader
}

type UploadStoreImage struct {
	repo     domain.Repository
	uploader media.Uploader
	cache    cache.Invalidator
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewUploadStoreImage(
	repo domain.Repository,
	uploader media.Uploader,
	inv cache.Invalidator,
	audit *audit.Dispatcher,
) *UploadStoreImage {
	return &UploadStoreImage{
		repo:     repo,
		uploader: uploader,
		cache:    inv,
		audit:    audit,
		now:      time.Now,
	}
}

// Execute stores the cover as WebP and returns its public URL.
func (uc *UploadStoreImage) Execute(ctx context.Context, in UploadStoreImageInput) (string, error) {
	s, err := loadManaged(ctx, uc.repo, in.Actor, in.StoreID)
	if err != nil {
		return "", err
	}

	body, err := media.ToWebP(in.File, media.MaxCoverWidth)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return "", httperr.ErrBusiness("invalid_image")
		}
		if errors.Is(err, media.ErrImageTooLarge) {
			return "", httperr.ErrBusiness("image_too_large")
		}
		return "", err
	}

	// versioned key so CDN copies of the old cover never shadow the new one
	key := fmt.Sprintf("stores/%s/cover-%d.webp", s.ID, uc.now().Unix())

	url, err := uc.uploader.Put(ctx, key, body, "image/webp")
	if err != nil {
		if errors.Is(err, media.ErrStorageDisabled) {
			return "", httperr.ErrBusiness("storage_disabled")
		}
		return "", err
	}

	if err := uc.repo.SetImage(ctx, s.ID, url); err != nil {
		return "", err
	}

	invalidate(ctx, uc.cache, s.ID)

	uc.audit.Dispatch(audit.Event{
		StoreID:  &s.ID,
		UserID:   &in.Actor.UserID,
		Action:   "store_image_uploaded",
		Entity:   "store",
		EntityID: &s.ID,
		Metadata: map[string]any{"key": key, "bytes": len(body)},
	})

	return url, nil
}
