package server

import (
	"errors"
	"fmt"
	"net/url"

	"pinpoint/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds the parsed page window.
type Pagination struct {
	Page    int
	PerPage int
	Offset  int
}

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// parsePagination extracts page and per_page query parameters. Out-of-range
// values are clamped rather than rejected.
func parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	perPage := c.QueryInt("per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Pagination{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps a service-layer error onto the HTTP status it
// implies. UNAUTHORIZED here always means an ownership check failed: the
// request was authenticated (401s come from the auth middleware), so it
// renders as 403.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "VALIDATION_ERROR":
		status = fiber.StatusBadRequest
	case "UNAUTHORIZED":
		status = fiber.StatusForbidden
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	}
	return models.RespondWithError(c, status, appErr)
}

// paginated wraps a result page in the data/links/meta envelope.
func paginated(c *fiber.Ctx, data any, p Pagination, total int64) fiber.Map {
	lastPage := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	path := c.BaseURL() + c.Path()

	// Page links keep the active filters, so following next/prev does not
	// reset search, sort, or bounding box parameters.
	filters := ""
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if k == "page" || k == "per_page" {
			return
		}
		filters += "&" + url.QueryEscape(k) + "=" + url.QueryEscape(string(value))
	})

	pageURL := func(page int) string {
		return fmt.Sprintf("%s?page=%d&per_page=%d%s", path, page, p.PerPage, filters)
	}

	var prev, next any
	if p.Page > 1 {
		prev = pageURL(p.Page - 1)
	}
	if p.Page < lastPage {
		next = pageURL(p.Page + 1)
	}

	from := p.Offset + 1
	to := p.Offset + p.PerPage
	if int64(to) > total {
		to = int(total)
	}
	if total == 0 {
		from = 0
		to = 0
	}

	return fiber.Map{
		"data": data,
		"links": fiber.Map{
			"first": pageURL(1),
			"last":  pageURL(lastPage),
			"prev":  prev,
			"next":  next,
		},
		"meta": fiber.Map{
			"current_page": p.Page,
			"from":         from,
			"last_page":    lastPage,
			"path":         path,
			"per_page":     p.PerPage,
			"to":           to,
			"total":        total,
		},
	}
}
