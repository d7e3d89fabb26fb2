package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/dto"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/serverutils"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/service"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/orchestrator"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Respond(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Directory(ctx *fiber.Ctx) error
}

type assistantController struct {
	orch      *orchestrator.Orchestrator
	directory service.IDirectoryService
	validate  *validator.Validate
}

func NewAssistantController(orch *orchestrator.Orchestrator, directory service.IDirectoryService) IAssistantController {
	return &assistantController{
		orch:      orch,
		directory: directory,
		validate:  validator.New(),
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant")
	h.Post("/query", c.Query)
	h.Post("/select", c.Select)
	h.Post("/respond", c.Respond)
	h.Get("/status", c.Status)
	r.Get("/directory", c.Directory)
}

func (c *assistantController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.UserEmail = serverutils.RequesterEmail(ctx, req.UserEmail)
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res := c.orch.SubmitQuery(ctx.Context(), req.UserEmail, req.Query)
	return ctx.JSON(res)
}

func (c *assistantController) Select(ctx *fiber.Ctx) error {
	var req dto.SelectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.UserEmail = serverutils.RequesterEmail(ctx, req.UserEmail)
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res := c.orch.SelectOption(ctx.Context(), req.UserEmail, req.Index)
	return ctx.JSON(res)
}

func (c *assistantController) Respond(ctx *fiber.Ctx) error {
	var req dto.RespondRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.UserEmail = serverutils.RequesterEmail(ctx, req.UserEmail)
	if err := c.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res := c.orch.RespondToConfirmation(ctx.Context(), req.UserEmail, req.ConfirmationID, req.Reply)
	return ctx.JSON(res)
}

func (c *assistantController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Assistant status", c.orch.Status()))
}

func (c *assistantController) Directory(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Directory", c.directory.People()))
}
