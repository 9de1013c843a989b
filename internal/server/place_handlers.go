package server

import (
	"mime/multipart"
	"strconv"
	"strings"

	"pinpoint/internal/models"
	"pinpoint/internal/service"

	"github.com/gofiber/fiber/v2"
)

type placeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// GetPlaces handles the public place listing with filtering, sorting, and
// pagination.
func (s *Server) GetPlaces(c *fiber.Ctx) error {
	p := parsePagination(c)

	in := service.ListPlacesInput{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Limit:  p.PerPage,
		Offset: p.Offset,
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("user_id must be a number"))
		}
		in.UserID = uint(userID)
	}

	var err error
	if in.LatMin, err = queryFloat(c, "lat_min"); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lat_min must be a number"))
	}
	if in.LatMax, err = queryFloat(c, "lat_max"); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lat_max must be a number"))
	}
	if in.LngMin, err = queryFloat(c, "lng_min"); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lng_min must be a number"))
	}
	if in.LngMax, err = queryFloat(c, "lng_max"); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lng_max must be a number"))
	}

	places, total, err := s.placeService.ListPlaces(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(paginated(c, places, p, total))
}

// GetPlace returns one place with its comment count.
func (s *Server) GetPlace(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	place, err := s.placeService.GetPlace(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": place,
	})
}

// CreatePlace creates a place for the authenticated user. Accepts JSON or,
// when an image is attached, multipart form data.
func (s *Server) CreatePlace(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	req, image, err := s.parsePlaceRequest(c)
	if err != nil {
		return nil
	}

	in := service.CreatePlaceInput{
		UserID:    userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Address != nil {
		in.Address = *req.Address
	}
	if image != nil {
		file, err := image.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read uploaded image"))
		}
		defer file.Close()
		in.Image = file
		in.ImageName = image.Filename
	}

	place, err := s.placeService.CreatePlace(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": place,
	})
}

// UpdatePlace applies a partial update to a place owned by the caller.
func (s *Server) UpdatePlace(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, image, err := s.parsePlaceRequest(c)
	if err != nil {
		return nil
	}

	in := service.UpdatePlaceInput{
		UserID:      userID,
		PlaceID:     id,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if image != nil {
		file, err := image.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read uploaded image"))
		}
		defer file.Close()
		in.Image = file
		in.ImageName = image.Filename
	}

	place, err := s.placeService.UpdatePlace(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": place,
	})
}

// DeletePlace removes a place owned by the caller along with its comments.
func (s *Server) DeletePlace(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.placeService.DeletePlace(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parsePlaceRequest reads place fields from either a JSON body or a multipart
// form. On failure the 400 response is already written and the caller should
// return nil.
func (s *Server) parsePlaceRequest(c *fiber.Ctx) (*placeRequest, *multipart.FileHeader, error) {
	var req placeRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid multipart form"))
			return nil, nil, errResponseWritten
		}

		formValue := func(key string) *string {
			if values, ok := form.Value[key]; ok && len(values) > 0 {
				return &values[0]
			}
			return nil
		}

		req.Name = formValue("name")
		req.Description = formValue("description")
		req.Address = formValue("address")

		for key, dest := range map[string]**float64{
			"latitude":  &req.Latitude,
			"longitude": &req.Longitude,
		} {
			raw := formValue(key)
			if raw == nil {
				continue
			}
			value, err := strconv.ParseFloat(*raw, 64)
			if err != nil {
				_ = models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewFieldValidationError(map[string][]string{
						key: {"The " + key + " must be a number."},
					}))
				return nil, nil, errResponseWritten
			}
			*dest = &value
		}

		var image *multipart.FileHeader
		if files, ok := form.File["image"]; ok && len(files) > 0 {
			image = files[0]
		}
		return &req, image, nil
	}

	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return nil, nil, errResponseWritten
	}
	return &req, nil, nil
}

// queryFloat reads an optional float query parameter.
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
