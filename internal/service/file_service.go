package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"time"

	"github.com/cichowlasp/s3-demo/internal/cache"
	"github.com/cichowlasp/s3-demo/internal/domain"
	"github.com/cichowlasp/s3-demo/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FileService orchestrates bucket operations for the console: listing with
// temporary download URLs, multipart uploads, and deletes.
type FileService struct {
	storage    storage.ObjectStorage
	cache      cache.FileListCache
	presignTTL time.Duration
}

func NewFileService(st storage.ObjectStorage, c cache.FileListCache, presignTTL time.Duration) *FileService {
	if c == nil {
		c = cache.NewNoopFileListCache()
	}
	if presignTTL <= 0 {
		presignTTL = time.Hour
	}
	return &FileService{
		storage:    st,
		cache:      c,
		presignTTL: presignTTL,
	}
}

// ListFiles returns every object in the bucket with a presigned download
// URL. Cache failures degrade to an uncached listing.
func (s *FileService) ListFiles(ctx context.Context) ([]domain.FileInfo, error) {
	if cached, ok, err := s.cache.Get(ctx); err != nil {
		log.Warn().Err(err).Msg("file listing cache read failed")
	} else if ok {
		return cached, nil
	}

	objects, err := s.storage.ListObjects(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	files := make([]domain.FileInfo, 0, len(objects))
	for _, object := range objects {
		url, err := s.storage.PresignedGetURL(ctx, object.Key, s.presignTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign %s: %w", object.Key, err)
		}
		files = append(files, domain.FileInfo{
			ID:           object.Key,
			Name:         path.Base(object.Key),
			Size:         object.Size,
			LastModified: object.LastModified.UTC().Format(time.RFC3339),
			URL:          url,
		})
	}

	if err := s.cache.Set(ctx, files); err != nil {
		log.Warn().Err(err).Msg("file listing cache write failed")
	}
	return files, nil
}

// UploadFiles stores every part of a multipart upload, one object per file,
// fanning the uploads out concurrently. The object key is the uploaded
// file's name.
func (s *FileService) UploadFiles(ctx context.Context, files []*multipart.FileHeader) ([]domain.StoredFile, error) {
	stored := make([]domain.StoredFile, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, header := range files {
		i, header := i, header
		g.Go(func() error {
			f, err := header.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", header.Filename, err)
			}
			defer f.Close()

			contentType := header.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			if err := s.storage.UploadObject(ctx, header.Filename, f, header.Size, contentType); err != nil {
				return fmt.Errorf("failed to upload %s: %w", header.Filename, err)
			}

			stored[i] = domain.StoredFile{FileName: header.Filename, Key: header.Filename}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return stored, nil
}

// DeleteFile removes the object identified by key.
func (s *FileService) DeleteFile(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("file id is required")
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	s.invalidateListing(ctx)
	return nil
}

func (s *FileService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("file listing cache invalidation failed")
	}
}
