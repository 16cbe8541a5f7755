package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipebox/internal/domain"
)

const (
	// MaxFileSize caps a single recipe image.
	MaxFileSize = 10 * 1024 * 1024

	defaultBaseDir    = "./uploads"
	defaultStaticBase = "/static/uploads"
)

var (
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", domain.ErrValidation)
	ErrFileTooLarge    = fmt.Errorf("%w: file exceeds maximum allowed size", domain.ErrValidation)
	ErrInvalidMimeType = fmt.Errorf("%w: only image files are accepted", domain.ErrValidation)
	ErrNotFound        = fmt.Errorf("%w: upload", domain.ErrNotFound)
	ErrNotOwner        = fmt.Errorf("%w: not your upload", domain.ErrForbidden)
)

// allowedMimeTypes: recipe photos only, no video or documents.
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Service stores recipe images on local disk: save file, record row, return
// the public URL the recipe keeps in its image list.
type Service struct {
	db         *gorm.DB
	baseDir    string
	staticBase string
}

func NewService(db *gorm.DB, baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = defaultBaseDir
	}
	if staticBase == "" {
		staticBase = defaultStaticBase
	}
	return &Service{db: db, baseDir: baseDir, staticBase: staticBase}
}

func (s *Service) Upload(ctx context.Context, userID uuid.UUID, fileHeader *multipart.FileHeader) (*domain.Upload, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	// sniff the real type, the client-sent header is not trusted
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]

	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	id := uuid.New()
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(fileHeader.Filename), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	up := &domain.Upload{
		ID:           id,
		UserID:       userID,
		OriginalName: fileHeader.Filename,
		FilePath:     relPath,
		FileURL:      s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/"),
		MimeType:     mimeType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(up).Error; err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("save upload record: %w", err)
	}
	return up, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error) {
	var up domain.Upload
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&up).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &up, nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	up, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if up.UserID != userID {
		return ErrNotOwner
	}

	// file may already be gone
	_ = os.Remove(filepath.Join(s.baseDir, up.FilePath))

	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Upload{}).Error
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Upload, error) {
	var uploads []domain.Upload
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "image"
	}
	return name
}
