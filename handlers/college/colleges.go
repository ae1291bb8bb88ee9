package college

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/services"
	"github.com/sahilchouksey/college-directory/utils/apperror"
	queryHelper "github.com/sahilchouksey/college-directory/utils/query"
	"github.com/sahilchouksey/college-directory/utils/response"
	"github.com/sahilchouksey/college-directory/utils/validation"
)

// CollegeService is the read side of the directory used by the handlers
type CollegeService interface {
	ListColleges(ctx context.Context, filter services.CollegeFilter, page queryHelper.Page) (*services.CollegePage, error)
	GetCollege(ctx context.Context, id uint) (*model.CollegeWithContact, error)
	ListByDistrict(ctx context.Context, district string) ([]model.College, error)
	ListByCategory(ctx context.Context, category string) ([]model.College, error)
	ListDistricts(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListCollegeTypes(ctx context.Context) ([]string, error)
}

// CollegeHandler handles college-related requests
type CollegeHandler struct {
	service CollegeService
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(service CollegeService) *CollegeHandler {
	return &CollegeHandler{service: service}
}

// ListColleges handles GET /api/colleges
func (h *CollegeHandler) ListColleges(c *fiber.Ctx) error {
	page, err := queryHelper.NewPage(c.Query("page"), c.Query("limit"),
		services.DefaultCollegePageSize, services.MaxCollegePageSize)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter, err := parseCollegeFilter(c)
	if err != nil {
		return response.HandleError(c, err)
	}

	result, err := h.service.ListColleges(c.UserContext(), filter, page)
	if err != nil {
		return response.HandleError(c, err)
	}

	pagination := response.CalculatePagination(page.Number, page.Limit, result.Total)
	return response.Paginated(c, result.Colleges, pagination)
}

// GetCollege handles GET /api/colleges/:id
func (h *CollegeHandler) GetCollege(c *fiber.Ctx) error {
	id, err := ParseID(c.Params("id"), "college")
	if err != nil {
		return response.HandleError(c, err)
	}

	college, err := h.service.GetCollege(c.UserContext(), id)
	if err != nil {
		return response.HandleError(c, err)
	}

	return response.Success(c, college)
}

// ListByDistrict handles GET /api/colleges/district/:district
func (h *CollegeHandler) ListByDistrict(c *fiber.Ctx) error {
	colleges, err := h.service.ListByDistrict(c.UserContext(), validation.SanitizeString(c.Params("district")))
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, colleges)
}

// ListByCategory handles GET /api/colleges/category/:category
func (h *CollegeHandler) ListByCategory(c *fiber.Ctx) error {
	colleges, err := h.service.ListByCategory(c.UserContext(), validation.SanitizeString(c.Params("category")))
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, colleges)
}

// parseCollegeFilter reads the listing filters. college_type is accepted as
// an alias of type; type wins when both are sent.
func parseCollegeFilter(c *fiber.Ctx) (services.CollegeFilter, error) {
	filter := services.CollegeFilter{
		Search:   validation.SanitizeString(c.Query("search")),
		District: validation.SanitizeString(c.Query("district")),
		Category: validation.SanitizeString(c.Query("category")),
		Type:     validation.SanitizeString(c.Query("type")),
	}
	if filter.Type == "" {
		filter.Type = validation.SanitizeString(c.Query("college_type"))
	}

	var err error
	if filter.Autonomous, err = parseBoolQuery(c, "autonomous"); err != nil {
		return filter, err
	}
	if filter.HostelAvailable, err = parseBoolQuery(c, "hostel_available"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseBoolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := validation.SanitizeString(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.BadRequest("invalid %s %q: must be true or false", key, raw)
	}
	return &b, nil
}

// ParseID parses a positive numeric path id
func ParseID(raw, what string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperror.BadRequest("Invalid %s ID", what)
	}
	return uint(id), nil
}
