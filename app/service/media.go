package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"
	"github.com/vibast-solutions/ms-go-skillbase/app/storage"
)

const (
	FolderImages   = "images"
	FolderReadings = "readings"
	FolderVideos   = "videos"
)

var extensionFolders = map[string]string{
	"jpg":  FolderImages,
	"jpeg": FolderImages,
	"png":  FolderImages,
	"txt":  FolderReadings,
	"pdf":  FolderReadings,
	"doc":  FolderReadings,
	"xlsx": FolderReadings,
	"ppt":  FolderReadings,
	"mkv":  FolderVideos,
	"mp4":  FolderVideos,
}

type blobStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ClassifyFile returns the storage folder and lowercased extension of filename.
func ClassifyFile(filename string) (string, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	folder, ok := extensionFolders[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: only jpg, jpeg, png, txt, pdf, doc, xlsx, ppt, mkv, mp4 are allowed", ErrUnsupportedFile)
	}
	return folder, ext, nil
}

// MediaUploader stores uploaded files in the blob store under dated keys.
type MediaUploader struct {
	store blobStore
	clock Clock
}

func NewMediaUploader(store blobStore, clock Clock) *MediaUploader {
	if clock == nil {
		clock = time.Now
	}
	return &MediaUploader{store: store, clock: clock}
}

// Upload stores the file and returns its URL and folder. allowed restricts the folders
// accepted for this upload; no folders means any supported file.
func (u *MediaUploader) Upload(ctx context.Context, upload *dto.Upload, allowed ...string) (string, string, error) {
	folder, ext, err := ClassifyFile(upload.Filename)
	if err != nil {
		return "", "", err
	}
	if len(allowed) > 0 && !containsString(allowed, folder) {
		return "", "", fmt.Errorf("%w: expected %s", ErrUnsupportedFile, strings.Join(allowed, " or "))
	}

	body, err := upload.Open()
	if err != nil {
		return "", "", err
	}
	defer body.Close()

	url, err := u.store.Put(ctx, storage.NewObjectKey(folder, ext, u.clock()), body, upload.ContentType)
	if err != nil {
		return "", "", err
	}
	return url, folder, nil
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
