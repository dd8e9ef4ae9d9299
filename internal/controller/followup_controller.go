package controller

import (
	"carenote-be/internal/pkg/serverutils"
	"carenote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFollowUpController interface {
	RegisterRoutes(r fiber.Router)
	State(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type followUpController struct {
	followUpService service.IFollowUpService
}

func NewFollowUpController(followUpService service.IFollowUpService) IFollowUpController {
	return &followUpController{
		followUpService: followUpService,
	}
}

func (c *followUpController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/followup/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("state", c.State)
	h.Post("cancel", c.Cancel)
}

func (c *followUpController) State(ctx *fiber.Ctx) error {
	userId := userIdFromToken(ctx)

	res, err := c.followUpService.GetState(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show follow-up state", res))
}

func (c *followUpController) Cancel(ctx *fiber.Ctx) error {
	userId := userIdFromToken(ctx)

	if err := c.followUpService.CancelCheckin(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel check-in", nil))
}
