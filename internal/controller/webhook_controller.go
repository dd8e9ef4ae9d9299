package controller

import (
	"carenote-be/internal/dto"
	"carenote-be/internal/pkg/serverutils"
	"carenote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IWebhookController receives chat-provider callbacks. The provider
// authenticates with a shared token, not a user JWT.
type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	InboundMessage(ctx *fiber.Ctx) error
}

type webhookController struct {
	messageService service.IMessageService
	webhookToken   string
}

func NewWebhookController(messageService service.IMessageService, webhookToken string) IWebhookController {
	return &webhookController{
		messageService: messageService,
		webhookToken:   webhookToken,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("message", c.InboundMessage)
}

func (c *webhookController) InboundMessage(ctx *fiber.Ctx) error {
	if c.webhookToken != "" && ctx.Get("X-Webhook-Token") != c.webhookToken {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid webhook token")
	}

	var req dto.InboundMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.HandleInbound(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success handle message", res))
}
