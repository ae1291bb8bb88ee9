package admission

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/utils/response"
	"github.com/sahilchouksey/college-directory/utils/validation"
)

// RequirementService looks up admission requirements by category
type RequirementService interface {
	GetAdmissionRequirement(ctx context.Context, category string) (*model.AdmissionRequirement, error)
}

// AdmissionHandler handles admission requirement requests
type AdmissionHandler struct {
	service RequirementService
}

// NewAdmissionHandler creates a new admission handler
func NewAdmissionHandler(service RequirementService) *AdmissionHandler {
	return &AdmissionHandler{service: service}
}

// GetRequirements handles GET /api/admission-requirements/:category
func (h *AdmissionHandler) GetRequirements(c *fiber.Ctx) error {
	category := validation.SanitizeString(c.Params("category"))

	requirement, err := h.service.GetAdmissionRequirement(c.UserContext(), category)
	if err != nil {
		return response.HandleError(c, err)
	}

	return response.Success(c, requirement)
}
