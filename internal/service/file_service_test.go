package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/cichowlasp/s3-demo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	objects map[string][]byte
	listErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	infos := make([]storage.ObjectInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, storage.ObjectInfo{
			Key:          k,
			Size:         int64(len(f.objects[k])),
			LastModified: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		})
	}
	return infos, nil
}

func (f *fakeStorage) UploadObject(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) PresignedGetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://bucket.example/%s?signature=abc", key), nil
}

func multipartHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/files", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["files"]
}

func TestUploadThenListRoundTrip(t *testing.T) {
	st := newFakeStorage()
	svc := NewFileService(st, nil, time.Hour)

	content := []byte("hello object storage")
	headers := multipartHeaders(t, map[string][]byte{"report.txt": content})

	stored, err := svc.UploadFiles(context.Background(), headers)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "report.txt", stored[0].FileName)
	assert.Equal(t, "report.txt", stored[0].Key)

	files, err := svc.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "report.txt", files[0].Name)
	assert.Equal(t, int64(len(content)), files[0].Size)
	assert.Contains(t, files[0].URL, "report.txt")
	assert.NotEmpty(t, files[0].LastModified)
}

func TestUploadMultipleFiles(t *testing.T) {
	st := newFakeStorage()
	svc := NewFileService(st, nil, time.Hour)

	headers := multipartHeaders(t, map[string][]byte{
		"a.txt": []byte("aaa"),
		"b.txt": []byte("bbbb"),
		"c.txt": []byte("c"),
	})

	stored, err := svc.UploadFiles(context.Background(), headers)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	files, err := svc.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDeleteRemovesFromListing(t *testing.T) {
	st := newFakeStorage()
	st.objects["old.log"] = []byte("stale")
	svc := NewFileService(st, nil, time.Hour)

	require.NoError(t, svc.DeleteFile(context.Background(), "old.log"))

	files, err := svc.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDeleteRequiresKey(t *testing.T) {
	svc := NewFileService(newFakeStorage(), nil, time.Hour)
	assert.Error(t, svc.DeleteFile(context.Background(), ""))
}

func TestListFilesStorageFailure(t *testing.T) {
	st := newFakeStorage()
	st.listErr = errors.New("bucket unreachable")
	svc := NewFileService(st, nil, time.Hour)

	_, err := svc.ListFiles(context.Background())
	assert.Error(t, err)
}
