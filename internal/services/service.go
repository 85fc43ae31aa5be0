package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"fleetadmin/internal/utils"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// lookupErr converts a repository read error. ErrNotFound becomes a 404
// carrying message; anything else is internal.
func lookupErr(err error, message string) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.NewNotFoundError(message)
	}
	return utils.WrapInternal(err)
}

// writeErr converts a repository write error. A duplicate key becomes a 409
// carrying message.
func writeErr(err error, message string) error {
	if errors.Is(err, utils.ErrDuplicateKey) {
		return utils.NewConflictError(message)
	}
	return utils.WrapInternal(err)
}

// checkUnique interprets a lookup by natural key. ErrNotFound means the
// value is free; a hit is a conflict unless taken reports otherwise.
func checkUnique(err error, taken func() bool, message string) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return nil
	case err != nil:
		return utils.WrapInternal(err)
	case taken():
		return utils.NewConflictError(message)
	default:
		return nil
	}
}

// actorFrom returns the authenticated user id the auth middleware stored on ctx.
func actorFrom(ctx context.Context) *primitive.ObjectID {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(logger.UserIDKey).(primitive.ObjectID); ok && !id.IsZero() {
		return &id
	}
	return nil
}

func actorHex(ctx context.Context) string {
	if id := actorFrom(ctx); id != nil {
		return id.Hex()
	}
	return "anonymous"
}

// ImageUpload is an image file received with a multipart request.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// imageStore resizes profile images and writes them to object storage.
type imageStore struct {
	storage storage.StorageProvider
	maxSide uint
	logger  *logger.Logger
}

// save stores upload under folder and returns the storage key.
func (s *imageStore) save(ctx context.Context, folder string, upload *ImageUpload) (string, error) {
	if s.storage == nil {
		return "", utils.NewBadRequestError("File uploads are not configured")
	}
	if !utils.IsImageFile(upload.Filename) {
		return "", utils.NewBadRequestError(utils.ErrInvalidFileType)
	}

	data, ext, err := utils.ProcessProfileImage(io.LimitReader(upload.Reader, utils.MaxImageSize+1), s.maxSide)
	if err != nil {
		return "", utils.NewBadRequestError(utils.ErrInvalidFileType)
	}

	key := path.Join(folder, utils.GenerateUniqueFilename(ext))
	_, err = s.storage.Upload(ctx, &storage.UploadRequest{
		Key:          key,
		Reader:       bytes.NewReader(data),
		ContentType:  utils.GetContentType(ext),
		Size:         int64(len(data)),
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", utils.WrapInternal(fmt.Errorf("failed to store image: %w", err))
	}
	return key, nil
}

// remove deletes a stored image. The shared default image is never removed.
func (s *imageStore) remove(ctx context.Context, key string) {
	if s.storage == nil || key == "" || key == utils.DefaultProfileImage {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to delete stored image")
	}
}
