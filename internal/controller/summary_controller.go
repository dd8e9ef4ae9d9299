package controller

import (
	"encoding/json"

	"carenote-be/internal/dto"
	"carenote-be/internal/pkg/serverutils"
	"carenote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ISummaryController is the intake edge: upstream summarizers POST here and
// the pipeline picks the message up asynchronously.
type ISummaryController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
}

type summaryController struct {
	publisherService service.IPublisherService
}

func NewSummaryController(publisherService service.IPublisherService) ISummaryController {
	return &summaryController{
		publisherService: publisherService,
	}
}

func (c *summaryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/summary/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
}

func (c *summaryController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.ProcessSummaryMessage{
		UserId:          req.UserId,
		ConversationRef: req.ConversationRef,
		Excerpt:         req.Excerpt,
		Summary:         req.Summary,
		CaseLabel:       req.CaseLabel,
	})
	if err != nil {
		return err
	}
	if err := c.publisherService.Publish(ctx.Context(), payload); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Summary accepted", nil))
}
