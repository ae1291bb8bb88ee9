package college

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// ListDistricts handles GET /api/districts
func (h *CollegeHandler) ListDistricts(c *fiber.Ctx) error {
	districts, err := h.service.ListDistricts(c.UserContext())
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, districts)
}

// ListCategories handles GET /api/categories
func (h *CollegeHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, categories)
}

// ListCollegeTypes handles GET /api/college-types
func (h *CollegeHandler) ListCollegeTypes(c *fiber.Ctx) error {
	types, err := h.service.ListCollegeTypes(c.UserContext())
	if err != nil {
		return response.HandleError(c, err)
	}
	return response.Success(c, types)
}
