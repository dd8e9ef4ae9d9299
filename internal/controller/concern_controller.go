package controller

import (
	"carenote-be/internal/dto"
	"carenote-be/internal/pkg/serverutils"
	"carenote-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConcernController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Snapshots(ctx *fiber.Ctx) error
	Aggregate(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Merge(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
}

type concernController struct {
	concernService service.IConcernService
	commandService service.ICommandService
}

func NewConcernController(
	concernService service.IConcernService,
	commandService service.ICommandService,
) IConcernController {
	return &concernController{
		concernService: concernService,
		commandService: commandService,
	}
}

func (c *concernController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/concern/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("aggregate", c.Aggregate)
	h.Get(":id/snapshots", c.Snapshots)
	h.Put("status", c.UpdateStatus)
	h.Post("merge", c.Merge)
	h.Post("delete", c.Delete)
	h.Post("rename", c.Rename)
}

func userIdFromToken(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *concernController) List(ctx *fiber.Ctx) error {
	userId := userIdFromToken(ctx)

	concerns, err := c.concernService.GetOpenConcerns(ctx.Context(), userId)
	if err != nil {
		return err
	}

	res := make([]dto.ConcernResponse, len(concerns))
	for i, concern := range concerns {
		res[i] = dto.ConcernResponse{
			Id:             concern.Id,
			Title:          concern.Title,
			Status:         string(concern.Status),
			SummaryContent: concern.SummaryContent,
			CreatedAt:      concern.CreatedAt,
			UpdatedAt:      concern.UpdatedAt,
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list concerns", res))
}

func (c *concernController) Snapshots(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid concern id")
	}

	snapshots, err := c.concernService.GetSnapshots(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list snapshots", snapshots))
}

func (c *concernController) Aggregate(ctx *fiber.Ctx) error {
	userId := userIdFromToken(ctx)

	res, err := c.concernService.GetAggregate(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no summary yet")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show summary", res))
}

func (c *concernController) UpdateStatus(ctx *fiber.Ctx) error {
	userId := userIdFromToken(ctx)

	var req dto.UpdateConcernStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.concernService.UpdateStatus(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update status", nil))
}

func (c *concernController) Merge(ctx *fiber.Ctx) error {
	var req dto.MergeConcernsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = userIdFromToken(ctx)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commandService.Merge(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success merge concerns", res))
}

func (c *concernController) Delete(ctx *fiber.Ctx) error {
	var req dto.DeleteConcernRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = userIdFromToken(ctx)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commandService.Delete(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete concern", res))
}

func (c *concernController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameConcernRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = userIdFromToken(ctx)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commandService.Rename(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename concern", res))
}
