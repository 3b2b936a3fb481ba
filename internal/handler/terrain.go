// Package handler exposes the HTTP handlers of the terrain API. Terrain
// creation requires an authenticated caller; browsing terrains and their
// reviews is public.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/terrain-rental/internal/middleware"
	"github.com/iliyamo/terrain-rental/internal/model"
	"github.com/iliyamo/terrain-rental/internal/queue"
	"github.com/iliyamo/terrain-rental/internal/repository"
	"github.com/iliyamo/terrain-rental/internal/request"
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// EventPublisher receives terrain.created events.
type EventPublisher interface {
	PublishTerrainCreated(ctx context.Context, ev queue.TerrainCreatedEvent) error
}

// TerrainHandler serves terrain endpoints.
type TerrainHandler struct {
	Store  *repository.Store
	Images ImageStore     // where main_image uploads go
	Events EventPublisher // optional; nil disables events
	Log    *zap.Logger
	Now    func() time.Time
}

func NewTerrainHandler(store *repository.Store, images ImageStore, events EventPublisher, log *zap.Logger) *TerrainHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TerrainHandler{Store: store, Images: images, Events: events, Log: log, Now: time.Now}
}

// terrainResp is a terrain with its gallery.
type terrainResp struct {
	*model.Terrain
	Images []*model.TerrainImage `json:"images"`
}

// Create lists a new terrain owned by the caller. Validation failures are
// answered with 422 and every failing field.
func (h *TerrainHandler) Create(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	if !request.Authorize(id) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	attrs, file, err := readAttributes(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req, verrs := request.ValidateStoreTerrain(attrs, h.Now())
	if verrs != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": verrs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var mainImage *string
	if file != nil && h.Images != nil {
		path, err := h.Images.Save(file, req.MainImage)
		if err != nil {
			h.Log.Error("store main image failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
		}
		mainImage = &path
	}

	t := req.Terrain(id.UserID, mainImage)
	if err := h.Store.Terrains.Create(ctx, t); err != nil {
		return storeError(c, h.Log, err)
	}
	h.publish(ctx, t)
	return c.JSON(http.StatusCreated, terrainResp{Terrain: t, Images: []*model.TerrainImage{}})
}

// publish reports the new terrain. Broker failures are logged only; the
// terrain is already stored.
func (h *TerrainHandler) publish(ctx context.Context, t *model.Terrain) {
	if h.Events == nil {
		return
	}
	ev := queue.TerrainCreatedEvent{
		TerrainID:   t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Location:    t.Location,
		PricePerDay: t.PricePerDay,
		IsAvailable: t.IsAvailable,
		CreatedAt:   t.CreatedAt,
	}
	if err := h.Events.PublishTerrainCreated(ctx, ev); err != nil {
		h.Log.Warn("publish terrain.created failed", zap.Uint64("terrain_id", t.ID), zap.Error(err))
	}
}

// Get returns one terrain with its images.
func (h *TerrainHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	t, err := h.Store.Terrains.GetByID(ctx, id)
	if err != nil {
		return storeError(c, h.Log, err)
	}
	images, err := h.Store.Images.ListByTerrain(ctx, id)
	if err != nil {
		return storeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, terrainResp{Terrain: t, Images: images})
}

// Reviews lists a terrain's reviews. ?rating=N keeps reviews rated exactly
// N; ?high_rated=true keeps reviews rated 4 or more. Both may be combined.
func (h *TerrainHandler) Reviews(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	scope := repository.ReviewScope{TerrainID: id}
	if raw := c.QueryParam("rating"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil || !model.ValidRating(r) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be an integer between 1 and 5"})
		}
		scope = scope.ByRating(r)
	}
	if raw := c.QueryParam("high_rated"); raw != "" {
		high, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "high_rated must be a boolean"})
		}
		if high {
			scope = scope.HighRated()
		}
	}

	ctx := c.Request().Context()
	if _, err := h.Store.Terrains.GetByID(ctx, id); err != nil {
		return storeError(c, h.Log, err)
	}
	reviews, err := h.Store.Reviews.Find(ctx, scope)
	if err != nil {
		return storeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}

// readAttributes decodes a JSON or multipart body into request.Attributes.
// For multipart bodies the main_image file header is returned as well.
func readAttributes(c echo.Context) (request.Attributes, *multipart.FileHeader, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		attrs := request.Attributes{}
		dec := json.NewDecoder(c.Request().Body)
		dec.UseNumber()
		if err := dec.Decode(&attrs); err != nil {
			return nil, nil, err
		}
		return attrs, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}
	attrs := request.Attributes{}
	for k, vs := range form.Value {
		if len(vs) > 0 {
			attrs[k] = vs[0]
		}
	}
	files := form.File["main_image"]
	if len(files) == 0 {
		return attrs, nil, nil
	}
	fh := files[0]
	head, err := sniff(fh)
	if err != nil {
		return nil, nil, err
	}
	attrs["main_image"] = &request.Upload{Filename: fh.Filename, Size: fh.Size, Header: head}
	return attrs, fh, nil
}

func sniff(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
