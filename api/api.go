package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/college-directory/utils/response"
)

// AppName is reported in fiber's startup banner
const AppName = "College Directory API"

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer creates the fiber app. Path parameters are unescaped so
// "/api/colleges/district/Mumbai%20City" matches "Mumbai City".
func NewAPIServer(listenAddress string, bodyLimit int) *APIServer {
	return &APIServer{
		app:           NewApp(bodyLimit),
		listenAddress: listenAddress,
	}
}

// NewApp returns a fiber app with the shared error handler
func NewApp(bodyLimit int) *fiber.App {
	cfg := fiber.Config{
		AppName:      AppName,
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return response.HandleError(c, err)
		},
	}
	if bodyLimit > 0 {
		cfg.BodyLimit = bodyLimit
	}
	return fiber.New(cfg)
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
