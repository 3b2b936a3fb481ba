// Package request validates and authorizes incoming write requests.
// Validation failures are returned as data keyed by field; they never
// surface as Go errors.
package request

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/iliyamo/terrain-rental/internal/model"
)

// Attributes is a candidate attribute set as decoded from JSON or a
// multipart form.
type Attributes map[string]any

// Upload is a file submitted with a request. Header holds the leading
// bytes of the content, enough to detect its type.
type Upload struct {
	Filename string
	Size     int64
	Header   []byte
}

// Errors maps a field name to its validation messages.
type Errors map[string][]string

func (e Errors) add(field, msg string) { e[field] = append(e[field], msg) }

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool { return len(e[field]) > 0 }

// StoreTerrain is an accepted terrain creation request.
type StoreTerrain struct {
	Title         string
	Description   *string
	Location      string
	AreaSize      float64
	PricePerDay   float64
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	IsAvailable   bool
	MainImage     *Upload
}

// Terrain converts the request into a terrain owned by ownerID.
// mainImage is the stored path of the uploaded image, if any.
func (r StoreTerrain) Terrain(ownerID uint64, mainImage *string) *model.Terrain {
	return &model.Terrain{
		OwnerID:       ownerID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		AreaSize:      r.AreaSize,
		PricePerDay:   r.PricePerDay,
		AvailableFrom: r.AvailableFrom,
		AvailableTo:   r.AvailableTo,
		IsAvailable:   r.IsAvailable,
		MainImage:     mainImage,
	}
}

// MaxImageSize is the largest accepted main_image upload.
const MaxImageSize = 2048 * 1024

var (
	validate = validator.New()

	// image rule: what counts as an image at all.
	imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/bmp", "image/svg+xml", "image/webp"}
	// mimes rule: the image types a terrain accepts.
	acceptedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

	dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}
)

var messages = map[string]string{
	"title.required":         "A terrain title is required.",
	"location.required":      "A terrain location is required.",
	"area_size.required":     "The area size is required.",
	"area_size.min":          "The area size must be at least 1.",
	"price_per_day.required": "The price per day is required.",
	"price_per_day.min":      "The price per day must be at least 0.",
	"available_to.after":     "The available to date must be after the available from date.",
	"main_image.image":       "The main image must be an image file.",
	"main_image.max":         "The main image may not be greater than 2MB.",
}

// message returns the custom message for field.rule, or a generic one.
func message(field, rule string, param ...string) string {
	if m, ok := messages[field+"."+rule]; ok {
		return m
	}
	label := strings.ReplaceAll(field, "_", " ")
	switch rule {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "string":
		return fmt.Sprintf("The %s must be a string.", label)
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", label)
	case "boolean":
		return fmt.Sprintf("The %s field must be true or false.", label)
	case "date":
		return fmt.Sprintf("The %s is not a valid date.", label)
	case "after_or_equal":
		return fmt.Sprintf("The %s must be a date after or equal to %s.", label, param[0])
	case "after":
		return fmt.Sprintf("The %s must be a date after %s.", label, param[0])
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, param[0])
	case "mimes":
		return fmt.Sprintf("The %s must be a file of type: %s.", label, param[0])
	}
	return fmt.Sprintf("The %s is invalid.", label)
}

// ValidateStoreTerrain checks attrs against the terrain creation rules.
// Every field is checked independently and reports its first failing
// rule; absent or blank values skip every rule except required. now
// anchors the "today" bound of available_from, and dates without an
// explicit offset are read in now's location. On success the returned
// Errors is nil.
func ValidateStoreTerrain(attrs Attributes, now time.Time) (StoreTerrain, Errors) {
	var out StoreTerrain
	errs := Errors{}

	if s, ok := requiredString(errs, attrs, "title"); ok {
		out.Title = s
	}
	if s, ok := requiredString(errs, attrs, "location"); ok {
		out.Location = s
	}
	if v, present := value(attrs, "description"); present {
		if s, ok := v.(string); ok {
			out.Description = &s
		} else {
			errs.add("description", message("description", "string"))
		}
	}
	if f, ok := requiredNumber(errs, attrs, "area_size", "min=1"); ok {
		out.AreaSize = f
	}
	if f, ok := requiredNumber(errs, attrs, "price_per_day", "min=0"); ok {
		out.PricePerDay = f
	}

	loc := now.Location()
	from, fromOK := optionalDate(errs, attrs, "available_from", loc)
	if fromOK && from != nil {
		if startOfDay(*from, loc).Before(startOfDay(now, loc)) {
			errs.add("available_from", message("available_from", "after_or_equal", "today"))
		} else {
			out.AvailableFrom = from
		}
	}
	if to, ok := optionalDate(errs, attrs, "available_to", loc); ok && to != nil {
		// the comparison target is the raw available_from value, so a
		// missing or malformed available_from fails this rule too
		if from == nil || !to.After(*from) {
			errs.add("available_to", message("available_to", "after", "available from"))
		} else {
			out.AvailableTo = to
		}
	}

	if v, present := value(attrs, "is_available"); present {
		if b, ok := toBool(v); ok {
			out.IsAvailable = b
		} else {
			errs.add("is_available", message("is_available", "boolean"))
		}
	}

	if v, present := value(attrs, "main_image"); present {
		if up, ok := checkImage(errs, v); ok {
			out.MainImage = up
		}
	}

	if len(errs) == 0 {
		return out, nil
	}
	return out, errs
}

// value returns attrs[field] and whether it is present and non-blank.
func value(attrs Attributes, field string) (any, bool) {
	v, ok := attrs[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func requiredString(errs Errors, attrs Attributes, field string) (string, bool) {
	v, present := value(attrs, field)
	if !present {
		errs.add(field, message(field, "required"))
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		errs.add(field, message(field, "string"))
		return "", false
	}
	if validate.Var(s, "max=255") != nil {
		errs.add(field, message(field, "max", "255"))
		return "", false
	}
	return s, true
}

func requiredNumber(errs Errors, attrs Attributes, field, minTag string) (float64, bool) {
	v, present := value(attrs, field)
	if !present {
		errs.add(field, message(field, "required"))
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok {
		errs.add(field, message(field, "numeric"))
		return 0, false
	}
	if validate.Var(f, minTag) != nil {
		errs.add(field, message(field, "min"))
		return 0, false
	}
	return f, true
}

// optionalDate parses field when present. It returns ok=false only when
// the value is present and not a date.
func optionalDate(errs Errors, attrs Attributes, field string, loc *time.Location) (*time.Time, bool) {
	v, present := value(attrs, field)
	if !present {
		return nil, true
	}
	t, ok := toDate(v, loc)
	if !ok {
		errs.add(field, message(field, "date"))
		return nil, false
	}
	return &t, true
}

func checkImage(errs Errors, v any) (*Upload, bool) {
	up, ok := v.(*Upload)
	if !ok || up == nil {
		errs.add("main_image", message("main_image", "image"))
		return nil, false
	}
	mt := mimetype.Detect(up.Header)
	if !lo.ContainsBy(imageTypes, func(t string) bool { return mt.Is(t) }) {
		errs.add("main_image", message("main_image", "image"))
		return nil, false
	}
	if !lo.ContainsBy(acceptedImageTypes, func(t string) bool { return mt.Is(t) }) {
		errs.add("main_image", message("main_image", "mimes", "jpeg, png, jpg, gif"))
		return nil, false
	}
	if up.Size > MaxImageSize {
		errs.add("main_image", message("main_image", "max"))
		return nil, false
	}
	return up, true
}

// toFloat accepts finite numbers only.
func toFloat(v any) (float64, bool) {
	f, ok := number(v)
	return f, ok && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case float64:
		return b == 1, b == 0 || b == 1
	case int:
		return b == 1, b == 0 || b == 1
	case json.Number:
		return b == "1", b == "0" || b == "1"
	case string:
		switch strings.TrimSpace(b) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
	}
	return false, false
}

func toDate(v any, loc *time.Location) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// startOfDay returns midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
