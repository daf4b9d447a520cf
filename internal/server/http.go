package server

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// HTTPApp returns an HTTP front end for the same JSON-RPC handlers served
// over stdio:
//
//	POST /rpc        one JSON-RPC request, one JSON-RPC response
//	GET  /tools      the tool definitions
//	GET  /health     liveness
//
// A notification posted to /rpc gets 204 No Content.
func (s *Server) HTTPApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serverName + " " + serverVersion,
		DisableStartupMessage: true,
		BodyLimit:             1024 * 1024,
	})

	app.Use(logger.New(logger.Config{Output: log.Writer()}))
	app.Use(cors.New())

	app.Post("/rpc", s.handleHTTPRequest)
	app.Get("/tools", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tools": GetToolDefinitions()})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "name": serverName, "version": serverVersion})
	})

	return app
}

// ServeHTTP listens on addr until the listener fails.
func (s *Server) ServeHTTP(addr string) error {
	log.Printf("HTTP server listening on %s", addr)
	return s.HTTPApp().Listen(addr)
}

func (s *Server) handleHTTPRequest(c *fiber.Ctx) error {
	var req MCPRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(s.errorResponse(nil, -32700, "Parse error", err.Error()))
	}

	resp := s.handleRequest(&req)
	if resp == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(resp)
}
