package extraction

import (
	"Menu-Builder-Backend/domain"
	"bytes"
	"context"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 64)...)
	pdfBytes  = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) PutObject(_ context.Context, objectKey string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.putErr != nil {
		return s.putErr
	}
	s.objects[objectKey] = body
	return nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type fakeVision struct {
	mu     sync.Mutex
	menu   domain.ExtractedMenu
	err    error
	inputs []domain.VisionInput
}

func (v *fakeVision) ExtractMenu(_ context.Context, input domain.VisionInput) (domain.ExtractedMenu, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.inputs = append(v.inputs, input)
	return v.menu, v.err
}

func (v *fakeVision) calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.inputs)
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 8)}
}

func (m *fakeMailer) SendMail(to string, subject string, body string) error {
	m.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

// newFileHeader round-trips data through a multipart body so the header can
// be opened like a real upload.
func newFileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}
