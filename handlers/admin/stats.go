package admin

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// StatsService computes the directory counters
type StatsService interface {
	Stats(ctx context.Context) (map[string]int64, error)
}

// GetStats handles GET /api/admin/stats
func GetStats(service StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := service.Stats(c.UserContext())
		if err != nil {
			return response.HandleError(c, err)
		}
		return response.Success(c, stats)
	}
}
