package controller

import (
	"tenx-cards-be/internal/dto"
	"tenx-cards-be/internal/pkg/serverutils"
	"tenx-cards-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
	jwtMiddleware     fiber.Handler
	rateLimit         fiber.Handler
}

func NewGenerationController(
	generationService service.IGenerationService,
	jwtMiddleware fiber.Handler,
	rateLimit fiber.Handler,
) IGenerationController {
	return &generationController{
		generationService: generationService,
		jwtMiddleware:     jwtMiddleware,
		rateLimit:         rateLimit,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/flashcards/v1")
	h.Use(c.jwtMiddleware)
	h.Post("generate", c.rateLimit, c.Generate)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	var req dto.GenerateFlashcardsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateFlashcards(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate flashcards", res))
}
