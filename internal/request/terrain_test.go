package request

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 8, 15, 30, 0, 0, time.UTC)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifHeader = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
	bmpHeader = []byte("BM\x3e\x00\x00\x00\x00\x00\x00\x00\x3e\x00\x00\x00\x28\x00\x00\x00")
)

func valid() Attributes {
	return Attributes{
		"title":         "Open field",
		"location":      "North ridge",
		"area_size":     250.5,
		"price_per_day": 80,
	}
}

func with(a Attributes, kv ...any) Attributes {
	for i := 0; i < len(kv); i += 2 {
		a[kv[i].(string)] = kv[i+1]
	}
	return a
}

func TestValidateAccepts(t *testing.T) {
	attrs := with(valid(),
		"description", "Flat and dry.",
		"available_from", "2024-01-08",
		"available_to", "2024-02-01",
		"is_available", "1",
		"main_image", &Upload{Filename: "field.png", Size: 1024, Header: pngHeader},
	)

	req, errs := ValidateStoreTerrain(attrs, now)
	require.Nil(t, errs)
	assert.Equal(t, "Open field", req.Title)
	assert.Equal(t, 250.5, req.AreaSize)
	assert.Equal(t, 80.0, req.PricePerDay)
	assert.True(t, req.IsAvailable)
	require.NotNil(t, req.Description)
	require.NotNil(t, req.AvailableTo)
	assert.NotNil(t, req.MainImage)

	tr := req.Terrain(7, nil)
	assert.Equal(t, uint64(7), tr.OwnerID)
	assert.Equal(t, req.AvailableFrom, tr.AvailableFrom)
}

func TestValidateTitleRequiredOnly(t *testing.T) {
	_, errs := ValidateStoreTerrain(Attributes{
		"title": "", "location": "Field", "area_size": 1, "price_per_day": 0,
	}, now)

	assert.Equal(t, Errors{"title": {"A terrain title is required."}}, errs)
}

func TestValidateAreaSizeMinimum(t *testing.T) {
	_, errs := ValidateStoreTerrain(Attributes{
		"title": "A", "location": "B", "area_size": 0.5, "price_per_day": 10,
	}, now)

	assert.Equal(t, Errors{"area_size": {"The area size must be at least 1."}}, errs)
}

func TestValidateAvailableToAfterFrom(t *testing.T) {
	_, errs := ValidateStoreTerrain(with(valid(),
		"available_from", "2024-01-10",
		"available_to", "2024-01-05",
	), now)

	assert.Equal(t, Errors{"available_to": {"The available to date must be after the available from date."}}, errs)
}

func TestValidateAvailableToEqualFromFails(t *testing.T) {
	_, errs := ValidateStoreTerrain(with(valid(),
		"available_from", "2024-01-10",
		"available_to", "2024-01-10",
	), now)

	assert.True(t, errs.Has("available_to"))
}

func TestValidateAvailableToWithoutFrom(t *testing.T) {
	_, errs := ValidateStoreTerrain(with(valid(), "available_to", "2024-03-01"), now)

	assert.Equal(t, []string{"The available to date must be after the available from date."}, errs["available_to"])
}

func TestValidateAvailableFromNotInPast(t *testing.T) {
	_, errs := ValidateStoreTerrain(with(valid(), "available_from", "2024-01-07"), now)
	assert.Equal(t, []string{"The available from must be a date after or equal to today."}, errs["available_from"])

	_, errs = ValidateStoreTerrain(with(valid(), "available_from", "2024-01-08"), now)
	assert.Nil(t, errs)
}

func TestValidateAvailableFromUsesClockZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)

	cases := []struct {
		name string
		now  time.Time
		from string
		ok   bool
	}{
		{"afternoon west of UTC", time.Date(2024, 1, 8, 15, 30, 0, 0, est), "2024-01-08", true},
		{"late evening west of UTC", time.Date(2024, 1, 8, 23, 30, 0, 0, est), "2024-01-08", true},
		{"yesterday west of UTC", time.Date(2024, 1, 8, 23, 30, 0, 0, est), "2024-01-07", false},
		{"early morning east of UTC", time.Date(2024, 1, 8, 2, 0, 0, 0, tokyo), "2024-01-08", true},
		{"yesterday east of UTC", time.Date(2024, 1, 8, 2, 0, 0, 0, tokyo), "2024-01-07", false},
		{"explicit offset on the same local day", time.Date(2024, 1, 8, 15, 30, 0, 0, est), "2024-01-08T06:00:00Z", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, errs := ValidateStoreTerrain(with(valid(), "available_from", tc.from), tc.now)
			if tc.ok {
				require.Nil(t, errs)
				require.NotNil(t, req.AvailableFrom)
				return
			}
			assert.Equal(t, []string{"The available from must be a date after or equal to today."}, errs["available_from"])
		})
	}
}

func TestValidateRejectsNonFiniteNumbers(t *testing.T) {
	for _, v := range []any{"Infinity", "-Inf", "NaN", " inf "} {
		_, errs := ValidateStoreTerrain(with(valid(), "price_per_day", v, "area_size", v), now)
		assert.Equal(t, []string{"The price per day must be a number."}, errs["price_per_day"], v)
		assert.Equal(t, []string{"The area size must be a number."}, errs["area_size"], v)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	_, errs := ValidateStoreTerrain(Attributes{
		"title":         strings.Repeat("x", 256),
		"area_size":     "big",
		"price_per_day": -1,
		"is_available":  "maybe",
		"available_to":  "not a date",
	}, now)

	assert.Equal(t, Errors{
		"title":         {"The title may not be greater than 255 characters."},
		"location":      {"A terrain location is required."},
		"area_size":     {"The area size must be a number."},
		"price_per_day": {"The price per day must be at least 0."},
		"is_available":  {"The is available field must be true or false."},
		"available_to":  {"The available to is not a valid date."},
	}, errs)
}

func TestValidateNumericForms(t *testing.T) {
	for name, v := range map[string]any{
		"json number": json.Number("12.5"),
		"string":      " 12.5 ",
		"int":         12,
	} {
		t.Run(name, func(t *testing.T) {
			req, errs := ValidateStoreTerrain(with(valid(), "area_size", v), now)
			require.Nil(t, errs)
			assert.InDelta(t, 12.5, req.AreaSize, 0.5)
		})
	}
}

func TestValidateMainImage(t *testing.T) {
	cases := []struct {
		name  string
		image any
		want  string
	}{
		{"not an upload", "field.png", "The main image must be an image file."},
		{"not an image", &Upload{Filename: "notes.png", Size: 10, Header: []byte("just some text")}, "The main image must be an image file."},
		{"image of wrong type", &Upload{Filename: "field.bmp", Size: 10, Header: bmpHeader}, "The main image must be a file of type: jpeg, png, jpg, gif."},
		{"too large", &Upload{Filename: "field.gif", Size: MaxImageSize + 1, Header: gifHeader}, "The main image may not be greater than 2MB."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ValidateStoreTerrain(with(valid(), "main_image", tc.image), now)
			assert.Equal(t, Errors{"main_image": {tc.want}}, errs)
		})
	}

	_, errs := ValidateStoreTerrain(with(valid(), "main_image", &Upload{Size: MaxImageSize, Header: gifHeader}), now)
	assert.Nil(t, errs)
}

func TestValidateOptionalFieldsMayBeBlank(t *testing.T) {
	req, errs := ValidateStoreTerrain(with(valid(),
		"description", nil,
		"available_from", "",
		"available_to", "  ",
		"main_image", nil,
	), now)

	require.Nil(t, errs)
	assert.Nil(t, req.Description)
	assert.Nil(t, req.AvailableFrom)
	assert.False(t, req.IsAvailable)
}

func TestAuthorize(t *testing.T) {
	assert.False(t, Authorize(Identity{}))
	assert.True(t, Authorize(Identity{UserID: 3, Email: "test@example.com"}))
}
