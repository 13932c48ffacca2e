package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/AvalonleFae/ezevent/config"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".pdf":  true,
}

type Service interface {
	Save(file *multipart.FileHeader, saveFn func(*multipart.FileHeader, string) error) (string, error)
	Delete(storedPath string) error
	PublicURL(storedPath string) string
}

type service struct {
	baseDir string
}

func NewService() Service {
	return &service{baseDir: config.UploadPath}
}

// Save stores the uploaded file under a random name and returns the
// relative path to persist. saveFn is gin's c.SaveUploadedFile.
func (s *service) Save(file *multipart.FileHeader, saveFn func(*multipart.FileHeader, string) error) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.baseDir, name)
	if err := saveFn(file, dst); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return name, nil
}

func (s *service) Delete(storedPath string) error {
	if storedPath == "" {
		return nil
	}
	// Stored paths are bare filenames; reject anything trying to escape
	if strings.Contains(storedPath, "..") || strings.ContainsAny(storedPath, "/\\") {
		return errors.New("invalid stored path")
	}
	return os.Remove(filepath.Join(s.baseDir, storedPath))
}

func (s *service) PublicURL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return fmt.Sprintf("%s/uploads/%s", config.BaseURL, storedPath)
}
