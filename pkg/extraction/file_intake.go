package extraction

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/utils/storage"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

const DefaultMaxUploadBytes = 10 << 20

type (
	FileIntake interface {
		Accept(ctx context.Context, restaurantID string, file *multipart.FileHeader, declaredType string) (domain.StoredFile, error)
		Discard(ctx context.Context, stored domain.StoredFile) error
	}

	fileIntake struct {
		s3       storage.AwsS3
		maxBytes int64
		now      func() time.Time
	}
)

func NewFileIntake(s3 storage.AwsS3, maxBytes int64) FileIntake {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &fileIntake{
		s3:       s3,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Accept sniffs the real content type, checks it against the declared one
// and writes accepted images to storage. PDFs are rejected before anything is
// written.
func (f *fileIntake) Accept(ctx context.Context, restaurantID string, file *multipart.FileHeader, declaredType string) (domain.StoredFile, error) {
	declared := strings.ToLower(strings.TrimSpace(declaredType))
	if declared != domain.DeclaredTypeImage && declared != domain.DeclaredTypePDF {
		return domain.StoredFile{}, &domain.ValidationError{Field: "type", Message: domain.MessageInvalidDeclaredType}
	}

	if file == nil {
		return domain.StoredFile{}, &domain.ValidationError{Field: "file", Message: "file is required"}
	}
	if file.Size > f.maxBytes {
		return domain.StoredFile{}, &domain.ValidationError{Field: "file", Message: domain.MessageFileTooLarge}
	}

	data, err := f.read(file)
	if err != nil {
		return domain.StoredFile{}, err
	}

	detected := storage.DetectMimeType(data)
	switch declared {
	case domain.DeclaredTypeImage:
		if !storage.IsAllowed(detected, storage.AllowImage...) {
			return domain.StoredFile{}, &domain.ValidationError{Field: "file", Message: domain.MessageInvalidImageFile}
		}
	case domain.DeclaredTypePDF:
		if !storage.IsAllowed(detected, storage.AllowPDF...) {
			return domain.StoredFile{}, &domain.ValidationError{Field: "file", Message: domain.MessageInvalidPDFFile}
		}
		return domain.StoredFile{}, &domain.UnsupportedFormatError{
			ContentType: "application/pdf",
			Message:     domain.MessagePDFNotSupported,
		}
	}

	contentType := strings.TrimSpace(strings.Split(detected.String(), ";")[0])
	objectKey := fmt.Sprintf("menus/%s/%d-%s", restaurantID, f.now().UnixNano(), sanitizeFileName(file.Filename, detected.Extension()))

	if err := f.s3.PutObject(ctx, objectKey, data, contentType); err != nil {
		return domain.StoredFile{}, &domain.StorageError{Key: objectKey, Err: err}
	}

	return domain.StoredFile{
		ObjectKey:   objectKey,
		URL:         f.s3.GetPublicLinkKey(objectKey),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (f *fileIntake) Discard(ctx context.Context, stored domain.StoredFile) error {
	return f.s3.DeleteFile(ctx, stored.ObjectKey)
}

func (f *fileIntake) read(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, &domain.ValidationError{Field: "file", Message: domain.MessageFileTooLarge}
	}
	if len(data) == 0 {
		return nil, &domain.ValidationError{Field: "file", Message: domain.MessageEmptyFile}
	}
	return data, nil
}

func sanitizeFileName(name string, fallbackExt string) string {
	base := strings.ToLower(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, stem)
	clean = strings.Trim(clean, "-")
	if len(clean) > 80 {
		clean = clean[:80]
	}
	if clean == "" || clean == "." {
		clean = "menu"
	}

	ext = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, ext)
	if ext == "" || ext == "." {
		ext = fallbackExt
	}
	return clean + ext
}
