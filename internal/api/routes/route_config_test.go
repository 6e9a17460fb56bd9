package routes

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/api/handlers"
	"Menu-Builder-Backend/internal/middleware"
	"Menu-Builder-Backend/pkg/extraction"
	"Menu-Builder-Backend/pkg/jwt"
	"Menu-Builder-Backend/pkg/menu"
	"Menu-Builder-Backend/pkg/restaurant"
	"Menu-Builder-Backend/pkg/subscription"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	objects map[string][]byte
}

func (s *memoryStorage) PutObject(_ context.Context, key string, body []byte, _ string) error {
	s.objects[key] = body
	return nil
}

func (s *memoryStorage) DeleteFile(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) GetPublicLinkKey(key string) string {
	return "https://cdn.example.com/" + key
}

type stubVision struct {
	menu domain.ExtractedMenu
	err  error
}

func (v *stubVision) ExtractMenu(context.Context, domain.VisionInput) (domain.ExtractedMenu, error) {
	return v.menu, v.err
}

type stubGateway struct{}

func (stubGateway) CreateTransaction(_ context.Context, orderID string, _ int64, _ string, _ string) (string, string, error) {
	return "token", "https://pay.example.com/" + orderID, nil
}

func (stubGateway) CheckTransaction(_ context.Context, orderID string) (domain.PaymentStatus, error) {
	return domain.PaymentStatus{OrderID: orderID, TransactionStatus: "settlement"}, nil
}

type testServer struct {
	app    *fiber.App
	vision *stubVision
	token  string
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	validate := validator.New()
	jwtService := jwt.NewJWTServiceWithSecret("secret", "test")
	vision := &stubVision{menu: domain.ExtractedMenu{Categories: []domain.ExtractedCategory{
		{Name: "Appetizers", Items: []domain.ExtractedItem{{Name: "Caesar Salad", Price: 12.99}}},
	}}}

	subscriptionService := subscription.NewSubscriptionService(subscription.NewInMemorySubscriptionRepository(), stubGateway{})
	restaurantService := restaurant.NewRestaurantService(restaurant.NewInMemoryRestaurantRepository(), subscriptionService)
	menuService := menu.NewMenuService(menu.NewInMemoryMenuRepository(), restaurantService, subscriptionService)
	extractionService := extraction.NewExtractionService(
		extraction.NewInMemoryExtractionRepository(),
		extraction.NewFileIntake(&memoryStorage{objects: map[string][]byte{}}, 0),
		vision,
		menuService,
		restaurantService,
		nil,
	)

	app := fiber.New()
	config := Config{
		App:                 app,
		RestaurantHandler:   handlers.NewRestaurantHandler(restaurantService, validate),
		MenuHandler:         handlers.NewMenuHandler(menuService, validate),
		ExtractionHandler:   handlers.NewExtractionHandler(extractionService, validate),
		SubscriptionHandler: handlers.NewSubscriptionHandler(subscriptionService, menuService, validate),
		Middleware:          middleware.NewMiddleware(),
		JWTService:          jwtService,
	}
	config.Setup()

	token, err := jwtService.GenerateTokenUser(uuid.NewString(), domain.RoleOwner, "owner@example.com", time.Hour)
	require.NoError(t, err)

	return &testServer{app: app, vision: vision, token: token}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()

	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body envelope
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func (s *testServer) createRestaurant(t *testing.T) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants", strings.NewReader(`{"name":"Luigi's"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body := s.do(t, req)
	require.Equal(t, http.StatusCreated, status, body.Error)

	var restaurant domain.RestaurantResponse
	require.NoError(t, json.Unmarshal(body.Data, &restaurant))
	return restaurant.ID
}

func uploadRequest(t *testing.T, restaurantID, filename string, data []byte, declared string) *http.Request {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if declared != "" {
		require.NoError(t, writer.WriteField("type", declared))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/"+restaurantID+"/menu/import", buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

func TestImportMenuEndpoint(t *testing.T) {
	s := setupServer(t)
	restaurantID := s.createRestaurant(t)

	status, body := s.do(t, uploadRequest(t, restaurantID, "menu.png", pngBytes, "image"))
	require.Equal(t, http.StatusCreated, status, body.Error)

	var res domain.ImportMenuResponse
	require.NoError(t, json.Unmarshal(body.Data, &res))
	assert.Equal(t, "completed", res.Status)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Caesar Salad", res.Items[0].Name)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/extractions/"+res.ExtractionID, nil))
	require.Equal(t, http.StatusOK, status, body.Error)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/menu", nil))
	require.Equal(t, http.StatusOK, status)
	var menuRes domain.MenuResponse
	require.NoError(t, json.Unmarshal(body.Data, &menuRes))
	assert.Len(t, menuRes.Items, 1)
}

func TestImportMenuEndpointErrorStatuses(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		data      []byte
		declared  string
		visionErr error
		want      int
	}{
		{"pdf", "menu.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), "pdf", nil, http.StatusUnsupportedMediaType},
		{"not an image", "menu.png", []byte("hello"), "image", nil, http.StatusBadRequest},
		{"bad declared type", "menu.png", pngBytes, "video", nil, http.StatusBadRequest},
		{"missing declared type", "menu.png", pngBytes, "", nil, http.StatusBadRequest},
		{"model rate limited", "menu.png", pngBytes, "image", &domain.ExternalServiceError{Service: "vision model", StatusCode: 429}, http.StatusBadGateway},
		{"model refused", "menu.png", pngBytes, "image", &domain.MalformedResponseError{Reason: "no JSON object found in model response"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupServer(t)
			s.vision.err = tt.visionErr
			restaurantID := s.createRestaurant(t)

			status, body := s.do(t, uploadRequest(t, restaurantID, tt.filename, tt.data, tt.declared))
			assert.Equal(t, tt.want, status, body.Error)
			assert.False(t, body.Status)
		})
	}
}

func TestImportMenuEndpointUnknownRestaurant(t *testing.T) {
	s := setupServer(t)

	status, _ := s.do(t, uploadRequest(t, uuid.NewString(), "menu.png", pngBytes, "image"))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestQuotaEndpoint(t *testing.T) {
	s := setupServer(t)
	s.createRestaurant(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/quota", nil))
	require.Equal(t, http.StatusOK, status)

	var quota domain.QuotaResponse
	require.NoError(t, json.Unmarshal(body.Data, &quota))
	assert.Equal(t, domain.TierFree, quota.Tier)
	assert.Equal(t, 1, quota.RestaurantCount)
	assert.False(t, quota.CanCreateRestaurant)
}

func TestRoutesRequireAuth(t *testing.T) {
	s := setupServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/restaurants", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
