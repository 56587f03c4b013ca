package handler

import (
	"strings"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/pkg/httpx"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AuthRequired verifies the bearer token and stores user_id, company_id and
// role in the request locals.
func (h *Handler) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return httpx.Error(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil {
			return httpx.Error(c, fiber.StatusUnauthorized, "invalid token")
		}

		if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
			return httpx.Error(c, fiber.StatusUnauthorized, "token expired")
		}

		userID, err := claimUUID(claims, "user_id")
		if err != nil {
			return httpx.Error(c, fiber.StatusUnauthorized, "invalid user claim")
		}

		companyID, err := claimUUID(claims, "company_id")
		if err != nil {
			return httpx.Error(c, fiber.StatusUnauthorized, "invalid company claim")
		}

		role, _ := claims["role"].(string)

		c.Locals("user_id", userID)
		c.Locals("company_id", companyID)
		c.Locals("role", role)

		return c.Next()
	}
}

// RoleRequired guards a route group behind a role.
func (h *Handler) RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("role") != role {
			return httpx.Error(c, fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	return uuid.Parse(raw)
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("user_id").(uuid.UUID)
	return id
}

func currentCompanyID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("company_id").(uuid.UUID)
	return id
}
