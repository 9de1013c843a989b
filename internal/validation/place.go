package validation

import "unicode/utf8"

const (
	MaxPlaceNameLen    = 255
	MaxPlaceAddressLen = 255
	MaxCommentTextLen  = 1000
)

// PlaceInput carries the mutable place fields for validation. Pointer fields
// distinguish "absent" from "present but empty" so partial updates only
// validate what was sent.
type PlaceInput struct {
	Name        *string
	Description *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
}

// ValidatePlace validates place fields and returns a field-keyed message map.
// When requireAll is set, name and both coordinates must be present (create);
// otherwise absent fields are skipped (partial update).
func ValidatePlace(in PlaceInput, requireAll bool) map[string][]string {
	errs := map[string][]string{}

	if in.Name == nil {
		if requireAll {
			errs["name"] = append(errs["name"], "The place name is required.")
		}
	} else {
		if *in.Name == "" {
			errs["name"] = append(errs["name"], "The place name is required.")
		} else if utf8.RuneCountInString(*in.Name) > MaxPlaceNameLen {
			errs["name"] = append(errs["name"], "The name must not exceed 255 characters.")
		}
	}

	if in.Address != nil && utf8.RuneCountInString(*in.Address) > MaxPlaceAddressLen {
		errs["address"] = append(errs["address"], "The address must not exceed 255 characters.")
	}

	if in.Latitude == nil {
		if requireAll {
			errs["latitude"] = append(errs["latitude"], "The latitude coordinate is required.")
		}
	} else if *in.Latitude < -90 || *in.Latitude > 90 {
		errs["latitude"] = append(errs["latitude"], "The latitude must be between -90 and 90.")
	}

	if in.Longitude == nil {
		if requireAll {
			errs["longitude"] = append(errs["longitude"], "The longitude coordinate is required.")
		}
	} else if *in.Longitude < -180 || *in.Longitude > 180 {
		errs["longitude"] = append(errs["longitude"], "The longitude must be between -180 and 180.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateCommentText validates comment text and returns a field-keyed message map.
func ValidateCommentText(text string) map[string][]string {
	errs := map[string][]string{}

	if text == "" {
		errs["text"] = append(errs["text"], "The comment text is required.")
	} else if utf8.RuneCountInString(text) > MaxCommentTextLen {
		errs["text"] = append(errs["text"], "The text must not exceed 1000 characters.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
