package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/terrain-rental/internal/config"
	"github.com/iliyamo/terrain-rental/internal/factory"
	"github.com/iliyamo/terrain-rental/internal/handler"
	"github.com/iliyamo/terrain-rental/internal/model"
	"github.com/iliyamo/terrain-rental/internal/queue"
	"github.com/iliyamo/terrain-rental/internal/repository"
	"github.com/iliyamo/terrain-rental/internal/repository/memory"
)

type recordedEvents struct{ got []queue.TerrainCreatedEvent }

func (r *recordedEvents) PublishTerrainCreated(_ context.Context, ev queue.TerrainCreatedEvent) error {
	r.got = append(r.got, ev)
	return nil
}

type api struct {
	e      *echo.Echo
	store  *repository.Store
	fac    *factory.Factory
	events *recordedEvents
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.NewStore()
	fac := factory.New(factory.NewFakerSource(9), store)
	fac.BcryptCost = bcrypt.MinCost
	events := &recordedEvents{}

	jwt := config.JWTConfig{Secret: "test-secret", AccessTTL: time.Minute}
	terrains := handler.NewTerrainHandler(store, handler.DiskImages{Dir: t.TempDir()}, events, nil)
	terrains.Now = func() time.Time { return time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC) }

	e := echo.New()
	RegisterRoutes(e, Deps{
		Health:    handler.Health(nil),
		Auth:      handler.NewAuthHandler(jwt, store.Users, nil),
		Terrains:  terrains,
		JWTSecret: jwt.Secret,
	})
	return &api{e: e, store: store, fac: fac, events: events}
}

func (a *api) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) login(t *testing.T) (string, *model.User) {
	t.Helper()
	u, err := a.fac.User(context.Background(), func(u *model.User) {
		u.Name = "Test User"
		u.Email = "test@example.com"
	})
	require.NoError(t, err)

	rec := a.do(http.MethodPost, "/v1/auth/login", `{"email":"TEST@example.com","password":"password"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Access.Token)
	return resp.Access.Token, u
}

func TestHealth(t *testing.T) {
	rec := newAPI(t).do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newAPI(t)
	a.login(t)

	rec := a.do(http.MethodPost, "/v1/auth/login", `{"email":"test@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(http.MethodPost, "/v1/auth/login", `{"email":"ghost@example.com","password":"password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(http.MethodPost, "/v1/auth/login", `{"email":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTerrain(t *testing.T) {
	a := newAPI(t)
	token, owner := a.login(t)

	body := `{"title":"North meadow","location":"Ridge road 4","area_size":"1200.5","price_per_day":90,
		"available_from":"2024-01-08","available_to":"2024-03-01","is_available":true}`
	rec := a.do(http.MethodPost, "/v1/terrains", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got model.Terrain
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.Equal(t, 1200.5, got.AreaSize)
	assert.True(t, got.IsAvailable)

	stored, err := a.store.Terrains.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "North meadow", stored.Title)

	require.Len(t, a.events.got, 1)
	assert.Equal(t, got.ID, a.events.got[0].TerrainID)
}

func TestCreateTerrainValidationErrors(t *testing.T) {
	a := newAPI(t)
	token, _ := a.login(t)

	rec := a.do(http.MethodPost, "/v1/terrains",
		`{"title":"A","location":"B","area_size":10,"price_per_day":10,"available_from":"2024-01-10","available_to":"2024-01-05"}`, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string][]string{
		"available_to": {"The available to date must be after the available from date."},
	}, resp.Errors)
	assert.Empty(t, a.events.got)
}

func TestCreateTerrainRequiresToken(t *testing.T) {
	rec := newAPI(t).do(http.MethodPost, "/v1/terrains", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTerrainWithImages(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	tr, err := a.fac.Terrain(ctx)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := a.fac.TerrainImage(ctx, func(img *model.TerrainImage) { img.TerrainID = tr.ID })
		require.NoError(t, err)
	}

	rec := a.do(http.MethodGet, "/v1/terrains/"+itoa(tr.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ID     uint64            `json:"id"`
		Images []json.RawMessage `json:"images"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, tr.ID, resp.ID)
	assert.Len(t, resp.Images, 3)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/v1/terrains/999", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/v1/terrains/abc", "", "").Code)
}

func TestTerrainReviewFilters(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	tr, err := a.fac.Terrain(ctx)
	require.NoError(t, err)
	for _, r := range []int{1, 2, 4, 4, 5} {
		rating := r
		_, err := a.fac.Review(ctx, func(rv *model.Review) {
			rv.TerrainID = tr.ID
			rv.Rating = rating
		})
		require.NoError(t, err)
	}

	count := func(query string) int {
		rec := a.do(http.MethodGet, "/v1/terrains/"+itoa(tr.ID)+"/reviews"+query, "", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp struct {
			Items []model.Review `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return len(resp.Items)
	}
	assert.Equal(t, 5, count(""))
	assert.Equal(t, 2, count("?rating=4"))
	assert.Equal(t, 3, count("?high_rated=true"))
	assert.Equal(t, 1, count("?rating=5&high_rated=true"))
	assert.Equal(t, 0, count("?rating=2&high_rated=1"))

	bad := a.do(http.MethodGet, "/v1/terrains/"+itoa(tr.ID)+"/reviews?rating=6", "", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func itoa(id uint64) string { return strconv.FormatUint(id, 10) }
