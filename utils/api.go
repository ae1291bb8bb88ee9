package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/database"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// MakeHTTPHandleFunc binds a store-aware handler to the store. Errors the
// handler returns are written through the shared error mapping.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.HandleError(c, err)
		}
		return nil
	}
}
