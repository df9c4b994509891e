package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/server/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	userIDKey    = "userID"
	requestIDKey = "requestID"
)

// requestIDMiddleware tags every request with a short random id so log lines
// from one request can be correlated.
func (s *Server) requestIDMiddleware(c *fiber.Ctx) error {
	id, err := common.MakeRandHexString(8)
	if err != nil {
		id = "unknown"
	}
	c.Locals(requestIDKey, id)
	c.Set("X-Request-Id", id)
	return c.Next()
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// accessTokenMiddleware requires a valid Bearer token on every route it
// guards and stores the authenticated user id in the request locals.
func (s *Server) accessTokenMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "missing token",
		})
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid token",
		})
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
