package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/terrain-rental/internal/middleware"
	"github.com/iliyamo/terrain-rental/internal/model"
	"github.com/iliyamo/terrain-rental/internal/repository"
	"github.com/iliyamo/terrain-rental/internal/repository/memory"
	"github.com/iliyamo/terrain-rental/internal/utils"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("down") }

func TestHealthReportsDatabaseDown(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)

	require.NoError(t, Health(failingPinger{})(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStoreErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("x: %w", repository.ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("x: %w", repository.ErrForeignKey), http.StatusUnprocessableEntity},
		{repository.ErrInvalid, http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		err, want := tc.err, tc.want
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, storeError(c, zap.NewNop(), err))
		assert.Equal(t, want, rec.Code, err.Error())
	}
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("main_image", "field.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func createWithMultipart(t *testing.T, h *TerrainHandler, token string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartBody(t, map[string]string{
		"title":         "Orchard",
		"location":      "East valley",
		"area_size":     "300",
		"price_per_day": "45.5",
		"is_available":  "1",
	}, image)

	e := echo.New()
	e.POST("/v1/terrains", h.Create, middleware.JWTAuth("secret"))
	req := httptest.NewRequest(http.MethodPost, "/v1/terrains", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateMultipartStoresImage(t *testing.T) {
	store := memory.NewStore()
	owner := &model.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, store.Users.Create(context.Background(), owner))
	tok, err := utils.NewAccessToken("secret", owner.ID, owner.Email, time.Minute)
	require.NoError(t, err)

	dir := t.TempDir()
	h := NewTerrainHandler(store, DiskImages{Dir: dir}, nil, nil)
	rec := createWithMultipart(t, h, tok.Token, pngBytes)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got model.Terrain
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.MainImage)
	assert.FileExists(t, *got.MainImage)
	assert.Equal(t, 45.5, got.PricePerDay)

	written, err := os.ReadFile(*got.MainImage)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)
}

func TestCreateMultipartRejectsNonImage(t *testing.T) {
	store := memory.NewStore()
	owner := &model.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, store.Users.Create(context.Background(), owner))
	tok, err := utils.NewAccessToken("secret", owner.ID, owner.Email, time.Minute)
	require.NoError(t, err)

	dir := t.TempDir()
	rec := createWithMultipart(t, NewTerrainHandler(store, DiskImages{Dir: dir}, nil, nil), tok.Token, []byte("plain text, not a picture"))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "The main image must be an image file.")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateForUnknownOwner(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 77, "gone@example.com", time.Minute)
	require.NoError(t, err)

	rec := createWithMultipart(t, NewTerrainHandler(memory.NewStore(), nil, nil, nil), tok.Token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
