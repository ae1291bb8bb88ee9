package admin

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/handlers/college"
	"github.com/sahilchouksey/college-directory/model"
	"github.com/sahilchouksey/college-directory/services"
	queryHelper "github.com/sahilchouksey/college-directory/utils/query"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// maxImportLogPageSize caps the import history page size
const maxImportLogPageSize = 100

// ImportLogService reads the bulk import history
type ImportLogService interface {
	List(ctx context.Context, page queryHelper.Page) ([]model.ImportLog, int64, error)
	Get(ctx context.Context, id uint) (*model.ImportLog, error)
}

// ListImportLogs handles GET /api/admin/imports
func ListImportLogs(service ImportLogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryHelper.NewPage(c.Query("page"), c.Query("limit"),
			services.DefaultImportLogPageSize, maxImportLogPageSize)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}

		logs, total, err := service.List(c.UserContext(), page)
		if err != nil {
			return response.HandleError(c, err)
		}

		return response.Paginated(c, logs, response.CalculatePagination(page.Number, page.Limit, total))
	}
}

// GetImportLog handles GET /api/admin/imports/:id
func GetImportLog(service ImportLogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := college.ParseID(c.Params("id"), "import log")
		if err != nil {
			return response.HandleError(c, err)
		}

		entry, err := service.Get(c.UserContext(), id)
		if err != nil {
			return response.HandleError(c, err)
		}

		return response.Success(c, entry)
	}
}
