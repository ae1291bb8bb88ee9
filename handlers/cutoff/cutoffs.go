package cutoff

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/handlers/college"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// CutoffService lists the admission cutoffs of a college
type CutoffService interface {
	ListCutoffs(ctx context.Context, collegeID uint) ([]model.Cutoff, error)
}

// CutoffHandler handles cutoff requests
type CutoffHandler struct {
	service CutoffService
}

// NewCutoffHandler creates a new cutoff handler
func NewCutoffHandler(service CutoffService) *CutoffHandler {
	return &CutoffHandler{service: service}
}

// ListCutoffs handles GET /api/cutoffs/:college_id. An unknown college has no
// cutoffs, so it yields an empty list rather than a 404.
func (h *CutoffHandler) ListCutoffs(c *fiber.Ctx) error {
	collegeID, err := college.ParseID(c.Params("college_id"), "college")
	if err != nil {
		return response.HandleError(c, err)
	}

	cutoffs, err := h.service.ListCutoffs(c.UserContext(), collegeID)
	if err != nil {
		return response.HandleError(c, err)
	}

	return response.Success(c, cutoffs)
}
