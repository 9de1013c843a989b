package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }
func fptr(f float64) *float64 { return &f }

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "correct-horse", false},
		{"exactly 8", "12345678", false},
		{"too short", "1234567", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "alice_99", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"bad characters", "alice!", true},
		{"leading underscore", "_alice", true},
		{"trailing hyphen", "alice-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.test"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a@b"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidatePlaceCreate(t *testing.T) {
	tests := []struct {
		name   string
		input  PlaceInput
		fields []string
	}{
		{
			name:   "all missing",
			input:  PlaceInput{},
			fields: []string{"name", "latitude", "longitude"},
		},
		{
			name:   "empty name",
			input:  PlaceInput{Name: strptr(""), Latitude: fptr(1), Longitude: fptr(1)},
			fields: []string{"name"},
		},
		{
			name:   "name too long",
			input:  PlaceInput{Name: strptr(strings.Repeat("x", 256)), Latitude: fptr(1), Longitude: fptr(1)},
			fields: []string{"name"},
		},
		{
			name:   "latitude too small",
			input:  PlaceInput{Name: strptr("X"), Latitude: fptr(-90.1), Longitude: fptr(0)},
			fields: []string{"latitude"},
		},
		{
			name:   "longitude too big",
			input:  PlaceInput{Name: strptr("X"), Latitude: fptr(0), Longitude: fptr(180.1)},
			fields: []string{"longitude"},
		},
		{
			name:   "address too long",
			input:  PlaceInput{Name: strptr("X"), Address: strptr(strings.Repeat("x", 256)), Latitude: fptr(0), Longitude: fptr(0)},
			fields: []string{"address"},
		},
		{
			name:  "valid with boundaries",
			input: PlaceInput{Name: strptr("X"), Latitude: fptr(90), Longitude: fptr(-180)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePlace(tt.input, true)
			if len(tt.fields) == 0 {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidatePlacePartial(t *testing.T) {
	// Absent fields are fine on update.
	assert.Nil(t, ValidatePlace(PlaceInput{}, false))
	assert.Nil(t, ValidatePlace(PlaceInput{Name: strptr("New name")}, false))

	// Present fields are still checked.
	errs := ValidatePlace(PlaceInput{Name: strptr("")}, false)
	assert.Contains(t, errs, "name")

	errs = ValidatePlace(PlaceInput{Latitude: fptr(123)}, false)
	assert.Contains(t, errs, "latitude")
}

func TestValidateCommentText(t *testing.T) {
	assert.Nil(t, ValidateCommentText("fine"))
	assert.Nil(t, ValidateCommentText(strings.Repeat("a", 1000)))

	errs := ValidateCommentText("")
	assert.Contains(t, errs, "text")

	errs = ValidateCommentText(strings.Repeat("a", 1001))
	assert.Contains(t, errs, "text")

	// rune count, not byte count
	assert.Nil(t, ValidateCommentText(strings.Repeat("é", 1000)))
}
