package extraction

import (
	"Menu-Builder-Backend/domain"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptStoresImage(t *testing.T) {
	store := newFakeStorage()
	intake := NewFileIntake(store, 0)

	stored, err := intake.Accept(context.Background(), "r-1", newFileHeader(t, "Dinner Menu.PNG", pngBytes), "image")
	require.NoError(t, err)

	assert.Equal(t, "image/png", stored.ContentType)
	assert.True(t, strings.HasPrefix(stored.ObjectKey, "menus/r-1/"), stored.ObjectKey)
	assert.True(t, strings.HasSuffix(stored.ObjectKey, "-dinner-menu.png"), stored.ObjectKey)
	assert.Equal(t, "https://cdn.example.com/"+stored.ObjectKey, stored.URL)
	assert.EqualValues(t, len(pngBytes), stored.Size)
	assert.Equal(t, 1, store.count())
}

func TestAcceptTrustsContentOverName(t *testing.T) {
	store := newFakeStorage()
	intake := NewFileIntake(store, 0)

	stored, err := intake.Accept(context.Background(), "r-1", newFileHeader(t, "menu.png", jpegBytes), "IMAGE")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", stored.ContentType)
}

func TestAcceptRejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		declared string
		maxBytes int64
		message  string
	}{
		{"unknown declared type", "a.png", pngBytes, "video", 0, domain.MessageInvalidDeclaredType},
		{"text posing as image", "a.png", []byte("just some text, not a picture"), "image", 0, domain.MessageInvalidImageFile},
		{"pdf declared as image", "a.png", pdfBytes, "image", 0, domain.MessageInvalidImageFile},
		{"image declared as pdf", "a.pdf", pngBytes, "pdf", 0, domain.MessageInvalidPDFFile},
		{"empty file", "a.png", []byte{}, "image", 0, domain.MessageEmptyFile},
		{"too large", "a.png", pngBytes, "image", 16, domain.MessageFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStorage()
			intake := NewFileIntake(store, tt.maxBytes)

			_, err := intake.Accept(context.Background(), "r-1", newFileHeader(t, tt.filename, tt.data), tt.declared)

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.message, validation.Message)
			assert.Zero(t, store.count())
		})
	}
}

func TestAcceptRejectsRealPDFBeforeStorage(t *testing.T) {
	store := newFakeStorage()
	intake := NewFileIntake(store, 0)

	_, err := intake.Accept(context.Background(), "r-1", newFileHeader(t, "menu.pdf", pdfBytes), "pdf")

	var unsupported *domain.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, domain.MessagePDFNotSupported, unsupported.Error())
	assert.Zero(t, store.count())
}

func TestAcceptWrapsStorageFailure(t *testing.T) {
	store := newFakeStorage()
	store.putErr = errors.New("bucket unavailable")
	intake := NewFileIntake(store, 0)

	_, err := intake.Accept(context.Background(), "r-1", newFileHeader(t, "menu.png", pngBytes), "image")

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, store.putErr)
	assert.True(t, strings.HasPrefix(storageErr.Key, "menus/r-1/"))
}

func TestAcceptNilFile(t *testing.T) {
	_, err := NewFileIntake(newFakeStorage(), 0).Accept(context.Background(), "r-1", nil, "image")

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Menu.JPG":              "menu.jpg",
		"../../etc/passwd":      "passwd.png",
		`C:\Users\me\lunch.png`: "lunch.png",
		"späti menü.webp":       "sp-ti-men.webp",
		"...":                   "menu.png",
		"":                      "menu.png",
		"weird.p$n#g":           "weird.png",
	}

	for in, want := range tests {
		assert.Equal(t, want, sanitizeFileName(in, ".png"), in)
	}
}
