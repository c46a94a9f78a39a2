// File: internal/filestorage/service.go
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"habitalink_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service stores uploaded listing photos on disk and hands back the public
// path string that the repositories persist. Repositories never see file
// handles, only paths.
type Service struct {
	storagePath  string
	publicPrefix string
	logger       *zap.Logger
}

// NewService creates a file storage service rooted at the configured upload path.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.UploadStoragePath == "" {
		return nil, fmt.Errorf("upload storage path cannot be empty")
	}
	if err := os.MkdirAll(cfg.UploadStoragePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", cfg.UploadStoragePath, err)
	}
	return &Service{
		storagePath:  cfg.UploadStoragePath,
		publicPrefix: strings.TrimSuffix(cfg.UploadPublicPrefix, "/"),
		logger:       logger.Named("FileStorage"),
	}, nil
}

// SaveUploadedFile writes a multipart file under a unique name and returns
// its public path (e.g. "/uploads/<uuid>.jpg").
func (s *Service) SaveUploadedFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	extension := filepath.Ext(filepath.Base(fileHeader.Filename))
	if extension == "" {
		contentType := fileHeader.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "image/jpeg"):
			extension = ".jpg"
		case strings.HasPrefix(contentType, "image/png"):
			extension = ".png"
		case strings.HasPrefix(contentType, "image/gif"):
			extension = ".gif"
		default:
			return "", fmt.Errorf("unsupported file type or missing extension: %s", contentType)
		}
	}
	uniqueFilename := uuid.New().String() + extension

	destinationPath := filepath.Join(s.storagePath, uniqueFilename)
	dst, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Debug("File saved", zap.String("path", destinationPath))
	return s.publicPrefix + "/" + uniqueFilename, nil
}

// SaveAll stores every file in order and returns their public paths. On the
// first failure, files already written in this call are removed so a failed
// upload leaves nothing behind.
func (s *Service) SaveAll(fileHeaders []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		p, err := s.SaveUploadedFile(fh)
		if err != nil {
			for _, saved := range paths {
				s.remove(saved)
			}
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *Service) remove(publicPath string) {
	name := strings.TrimPrefix(publicPath, s.publicPrefix+"/")
	if strings.Contains(name, "..") || name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.storagePath, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove file", zap.String("path", publicPath), zap.Error(err))
	}
}
