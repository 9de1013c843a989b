package server

import (
	"pinpoint/internal/models"
	"pinpoint/internal/weather"

	"github.com/gofiber/fiber/v2"
)

// GetWeather returns current conditions for a coordinate pair. The data key is
// null when the configured provider is unavailable; clients render "weather
// unavailable" rather than an error.
func (s *Server) GetWeather(c *fiber.Ctx) error {
	lat, err := queryFloat(c, "lat")
	if err != nil || lat == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string][]string{
				"lat": {"The lat parameter is required and must be a number."},
			}))
	}
	lon, err := queryFloat(c, "lon")
	if err != nil || lon == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string][]string{
				"lon": {"The lon parameter is required and must be a number."},
			}))
	}

	if *lat < -90 || *lat > 90 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string][]string{
				"lat": {"The lat must be between -90 and 90."},
			}))
	}
	if *lon < -180 || *lon > 180 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string][]string{
				"lon": {"The lon must be between -180 and 180."},
			}))
	}

	provider := c.Query("provider", s.weatherService.DefaultProvider())
	if !weather.KnownProvider(provider) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string][]string{
				"provider": {"The provider must be one of: openweathermap, openmeteo."},
			}))
	}

	reading, err := s.weatherService.CurrentFrom(c.Context(), provider, *lat, *lon)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"data": reading,
	})
}
