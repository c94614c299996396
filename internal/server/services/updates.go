package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/robotika/internal/common"
	"github.com/dmitrijs2005/robotika/internal/dbx"
	"github.com/dmitrijs2005/robotika/internal/server/models"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/repomanager"
)

// DefaultUpdatesLimit is how many published updates the public list returns
// when the caller does not ask for a number.
const DefaultUpdatesLimit = 10

// ImageInput is one submitted image. On the wire it is either a bare URL
// string or an object {"url", "isMain", "position"}.
type ImageInput struct {
	URL      string               `json:"url"`
	IsMain   bool                 `json:"isMain"`
	Position models.ImagePosition `json:"position"`

	bare bool
}

func (in *ImageInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var url string
		if err := json.Unmarshal(b, &url); err != nil {
			return err
		}
		*in = ImageInput{URL: url, bare: true}
		return nil
	}

	type plain ImageInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*in = ImageInput(p)
	return nil
}

// NewImageURL is the bare-URL form of an ImageInput.
func NewImageURL(url string) ImageInput {
	return ImageInput{URL: url, bare: true}
}

// UpdateInput is the writable part of an update. Published nil means true on
// create and unchanged on edit. Images nil leaves the stored set alone on edit.
type UpdateInput struct {
	Title     string
	Content   string
	Published *bool
	Images    *[]ImageInput
}

func (in UpdateInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}
	return nil
}

type UpdateService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUpdateService(db *sql.DB, m repomanager.RepositoryManager) *UpdateService {
	return &UpdateService{db: db, repomanager: m}
}

// buildImages turns submitted images into rows. Blank URLs are skipped but
// still consume their index, so display order and alt text follow the
// submitted positions.
func buildImages(title string, inputs []ImageInput) ([]*models.Image, error) {
	result := make([]*models.Image, 0, len(inputs))
	for i, in := range inputs {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			continue
		}

		isMain, position := in.IsMain, in.Position
		if in.bare {
			isMain = i == 0
			position = models.PositionNone
			if isMain {
				position = models.PositionTop
			}
		}
		if position == "" {
			position = models.PositionNone
		}
		if !position.Valid() {
			return nil, fmt.Errorf("%w: unknown image position %q", common.ErrorValidation, position)
		}

		label := "Image"
		if isMain {
			label = "Main"
		}
		alt := fmt.Sprintf("%s - %s %d", title, label, i+1)

		result = append(result, &models.Image{
			ImageURL:     url,
			AltText:      &alt,
			DisplayOrder: i,
			IsMain:       isMain,
			Position:     position,
		})
	}
	return result, nil
}

func (s *UpdateService) withImages(ctx context.Context, db dbx.DBTX, list []*models.Update) ([]*models.UpdateWithImages, error) {
	images := s.repomanager.Images(db)
	result := make([]*models.UpdateWithImages, 0, len(list))
	for _, u := range list {
		imgs, err := images.ListByUpdate(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading images: %w", err)
		}
		result = append(result, &models.UpdateWithImages{Update: *u, Images: imgs})
	}
	return result, nil
}

func (s *UpdateService) get(ctx context.Context, db dbx.DBTX, id string) (*models.UpdateWithImages, error) {
	u, err := s.repomanager.Updates(db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := s.withImages(ctx, db, []*models.Update{u})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// ListPublished returns at most limit published updates with their images.
func (s *UpdateService) ListPublished(ctx context.Context, limit int) ([]*models.UpdateWithImages, error) {
	if limit <= 0 {
		limit = DefaultUpdatesLimit
	}
	list, err := s.repomanager.Updates(s.db).ListPublished(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.withImages(ctx, s.db, list)
}

// GetPublished hides unpublished updates behind common.ErrorNotFound.
func (s *UpdateService) GetPublished(ctx context.Context, id string) (*models.UpdateWithImages, error) {
	u, err := s.get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !u.Published {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (s *UpdateService) ListAll(ctx context.Context) ([]*models.UpdateWithImages, error) {
	list, err := s.repomanager.Updates(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withImages(ctx, s.db, list)
}

func (s *UpdateService) Get(ctx context.Context, id string) (*models.UpdateWithImages, error) {
	return s.get(ctx, s.db, id)
}

// Create stores the update and its images in one transaction. authorID is
// the id of the authenticated admin.
func (s *UpdateService) Create(ctx context.Context, authorID string, in UpdateInput) (*models.UpdateWithImages, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var imgs []*models.Image
	if in.Images != nil {
		var err error
		if imgs, err = buildImages(in.Title, *in.Images); err != nil {
			return nil, err
		}
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}
	var author *string
	if authorID != "" {
		author = &authorID
	}

	var result *models.UpdateWithImages
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Updates(tx).Create(ctx, &models.Update{
			Title:     in.Title,
			Content:   in.Content,
			AuthorID:  author,
			Published: published,
		})
		if err != nil {
			return err
		}

		stored, err := s.createImages(ctx, tx, u.ID, imgs)
		if err != nil {
			return err
		}
		result = &models.UpdateWithImages{Update: *u, Images: stored}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating update: %w", err)
	}
	return result, nil
}

func (s *UpdateService) createImages(ctx context.Context, tx dbx.DBTX, updateID string, imgs []*models.Image) ([]*models.Image, error) {
	repo := s.repomanager.Images(tx)
	stored := make([]*models.Image, 0, len(imgs))
	for _, img := range imgs {
		img.UpdateID = updateID
		created, err := repo.Create(ctx, img)
		if err != nil {
			return nil, err
		}
		stored = append(stored, created)
	}
	return stored, nil
}

// Update rewrites the update and, when in.Images is set, replaces its whole
// image set. Both happen in one transaction.
func (s *UpdateService) Update(ctx context.Context, id string, in UpdateInput) (*models.UpdateWithImages, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var imgs []*models.Image
	if in.Images != nil {
		var err error
		if imgs, err = buildImages(in.Title, *in.Images); err != nil {
			return nil, err
		}
	}

	var result *models.UpdateWithImages
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Updates(tx).Update(ctx, id, in.Title, in.Content, in.Published); err != nil {
			return err
		}

		if in.Images != nil {
			if err := s.repomanager.Images(tx).DeleteByUpdate(ctx, id); err != nil {
				return err
			}
			if _, err := s.createImages(ctx, tx, id, imgs); err != nil {
				return err
			}
		}

		u, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error updating update %s: %w", id, err)
	}
	return result, nil
}

func (s *UpdateService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Updates(s.db).Delete(ctx, id)
}
