package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/ejifeanyi/lintra/internal/auth/dto"
	"github.com/ejifeanyi/lintra/internal/auth/service"
	apperrors "github.com/ejifeanyi/lintra/internal/errors"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	log            logrus.FieldLogger
}

func NewProjectHandler(projectService *service.ProjectService, log logrus.FieldLogger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, log: log}
}

// AddMember adds the principal registered under the posted email to the
// project's member set. Only the project owner may call it.
func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	var input dto.AddMemberInput
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email is required",
		})
	}

	caller := Principal(c)
	project, err := h.projectService.AddMember(c.Context(), caller.ID, c.Params("projectId"), input.Email)
	if err != nil {
		return h.projectError(c, err)
	}

	return c.JSON(dto.NewProjectOutput(project))
}

// RemoveMember drops the principal in the path from the project's member set.
// Only the project owner may call it.
func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	caller := Principal(c)
	project, err := h.projectService.RemoveMember(c.Context(), caller.ID, c.Params("projectId"), c.Params("userId"))
	if err != nil {
		return h.projectError(c, err)
	}

	return c.JSON(dto.NewProjectOutput(project))
}

func (h *ProjectHandler) projectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Project not found",
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	default:
		h.log.WithError(err).Error("project membership mutation failed")
		return serverError(c)
	}
}
