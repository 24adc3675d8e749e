package controllers

import (
	"context"
	"strings"
	"time"

	"umsjevari_go/database"
	"umsjevari_go/middleware"
	"umsjevari_go/models"
	"umsjevari_go/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct{}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an admin and returns a JWT token. When the database is
// unreachable the seeded credentials still work so the admin panel stays
// usable in fallback mode.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username and password are required",
		})
	}

	admin, err := ac.authenticate(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := middleware.GenerateToken(admin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	middleware.LogActivity(c, "LOGIN", "auth", admin.ID, fiber.Map{
		"username": admin.Username,
		"role":     admin.Role,
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"admin": fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

func (ac *AuthController) authenticate(username, password string) (*models.Admin, error) {
	if database.Available() {
		var admin models.Admin
		if err := database.DB.Where("username = ?", username).First(&admin).Error; err != nil {
			return nil, err
		}
		if err := utils.CheckPassword(password, admin.Password); err != nil {
			return nil, err
		}
		return &admin, nil
	}

	// Fallback mode: accept the same credentials the seeder provisions.
	fallback := models.Admin{Username: "admin", Role: "owner"}
	fallback.ID = 1
	if username != fallback.Username {
		return nil, fiber.ErrUnauthorized
	}
	if password != "admin123" {
		return nil, fiber.ErrUnauthorized
	}
	return &fallback, nil
}

// Logout blacklists the current JWT in Redis for the remainder of its life
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	rc := database.GetRedisClient()
	if rc != nil {
		ctx := context.Background()
		key := "blacklist:jwt:" + tokenString
		if err := rc.Set(ctx, key, "1", 24*time.Hour).Err(); err != nil {
			middleware.LogActivity(c, "LOGOUT", "auth", 0, fiber.Map{"error": err.Error()})
		}
	}

	if claims, err := middleware.GetCurrentClaims(c); err == nil {
		middleware.LogActivity(c, "LOGOUT", "auth", claims.AdminID, fiber.Map{"username": claims.Username})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetProfile returns the current admin's profile
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Admin not found",
		})
	}

	if database.Available() {
		var admin models.Admin
		if err := database.DB.First(&admin, claims.AdminID).Error; err == nil {
			return c.JSON(fiber.Map{
				"admin": fiber.Map{
					"id":         admin.ID,
					"username":   admin.Username,
					"role":       admin.Role,
					"created_at": admin.CreatedAt,
				},
			})
		}
	}

	return c.JSON(fiber.Map{
		"admin": fiber.Map{
			"id":       claims.AdminID,
			"username": claims.Username,
			"role":     claims.Role,
		},
	})
}

// ChangePassword allows an admin to change their own password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Admin not found",
		})
	}

	if !database.Available() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Password changes require the database",
		})
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "New password must be at least 6 characters",
		})
	}

	var admin models.Admin
	if err := database.DB.First(&admin, claims.AdminID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Admin not found",
		})
	}

	if err := utils.CheckPassword(req.CurrentPassword, admin.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Current password is incorrect",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	if err := database.DB.Model(&admin).Update("password", hashedPassword).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update password",
		})
	}

	middleware.LogActivity(c, "UPDATE", "admins", admin.ID, fiber.Map{
		"action": "password_change",
	})

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}
