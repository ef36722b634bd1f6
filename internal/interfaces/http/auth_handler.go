package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/pkg/config"
	"github.com/jose29di/sisinventario/pkg/jwt"
)

// AuthHandler autentica al responsable del corte contra las credenciales
// configuradas (hash bcrypt, nunca contraseña en claro).
type AuthHandler struct {
	auth config.AuthConfig
	jwt  config.JWTConfig
}

// NewAuthHandler construye el handler.
func NewAuthHandler(auth config.AuthConfig, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{auth: auth, jwt: jwtCfg}
}

// Login godoc
// @Summary      Autenticación del responsable del corte
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario y contraseña"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.User != h.auth.AdminUser || h.auth.PasswordHash == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "BAD_CREDENTIALS", Message: "credenciales inválidas"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.auth.PasswordHash), []byte(in.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "BAD_CREDENTIALS", Message: "credenciales inválidas"})
	}

	token, err := jwt.Generate(h.jwt.Secret, in.User, "admin", h.jwt.Issuer, h.jwt.Expiration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		Role:      "admin",
		ExpiresAt: time.Now().Add(time.Duration(h.jwt.Expiration) * time.Minute),
	})
}
