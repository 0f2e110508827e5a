package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ejifeanyi/lintra/internal/auth/dto"
	"github.com/ejifeanyi/lintra/internal/auth/ratelimit"
	"github.com/ejifeanyi/lintra/internal/auth/service"
	apperrors "github.com/ejifeanyi/lintra/internal/errors"
	"github.com/ejifeanyi/lintra/internal/observability"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
	limiter      *ratelimit.Limiter
	log          logrus.FieldLogger
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator,
	limiter *ratelimit.Limiter, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		limiter:      limiter,
		log:          log,
	}
}

// VerifyToken checks a body-carried token and echoes the decoded identity.
// Unlike Protect, a missing token here is a malformed request, not an
// authentication failure.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var input dto.VerifyInput
	if err := c.BodyParser(&input); err != nil || input.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token is required",
		})
	}

	userID, err := h.tokenService.Verify(input.Token)
	if err != nil {
		observability.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": verifyMessage(err),
		})
	}
	observability.TokenVerificationsTotal.WithLabelValues("ok").Inc()

	return c.JSON(dto.VerifyOutput{
		Success: true,
		Decoded: dto.DecodedToken{ID: userID},
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid input",
		})
	}

	if errs := input.Validate(); len(errs) > 0 {
		observability.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": errs,
		})
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyInUse) {
			observability.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User already exists",
			})
		}
		observability.RegistrationsTotal.WithLabelValues("error").Inc()
		h.log.WithError(err).Error("failed to register user")
		return serverError(c)
	}

	observability.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login sits behind the per-IP attempt limiter: at the ceiling the credential
// check never runs.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if err := h.limiter.Allow(c.IP()); err != nil {
		observability.LoginsTotal.WithLabelValues("rate_limited").Inc()
		observability.RateLimitRejectedTotal.Inc()
		h.log.WithField("ip", c.IP()).Warn("login rate limit exceeded")
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "Too many login attempts from this IP, please try again later.",
		})
	}

	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid input",
		})
	}

	user, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			observability.LoginsTotal.WithLabelValues("invalid").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid email or password",
			})
		}
		observability.LoginsTotal.WithLabelValues("error").Inc()
		h.log.WithError(err).Error("failed to log in user")
		return serverError(c)
	}

	observability.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(user)
}

// GetUser returns the authenticated principal Protect loaded for this request.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	return c.JSON(Principal(c))
}

// GetAllUsers lists every principal without password hashes. Admin only.
func (h *AuthHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		h.log.WithError(err).Error("failed to list users")
		return serverError(c)
	}
	return c.JSON(users)
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server error",
	})
}
