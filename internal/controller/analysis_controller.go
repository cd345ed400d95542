package controller

import (
	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Pause(ctx *fiber.Ctx) error
	Resume(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Continue(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	r.Post("/analyze", c.Analyze)
	r.Get("/progress/:id", c.Progress)

	h := r.Group("/sessions")
	h.Get("", c.List)
	h.Get(":id/status", c.Status)
	h.Post(":id/pause", c.Pause)
	h.Post(":id/resume", c.Resume)
	h.Post(":id/save", c.Save)
	h.Post(":id/continue", c.Continue)
	h.Delete(":id", c.Delete)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	var req dto.StartAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Análise iniciada", res))
}

func (c *analysisController) Progress(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Progress(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Progresso da análise", res))
}

func (c *analysisController) List(ctx *fiber.Ctx) error {
	var q dto.ListSessionsQuery
	if err := ctx.QueryParser(&q); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}

	res, err := c.analysisService.List(ctx.Context(), &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sessões de análise", res))
}

func (c *analysisController) Status(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Status(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Status da sessão", res))
}

func (c *analysisController) Pause(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Pause(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Análise pausada", res))
}

func (c *analysisController) Resume(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Resume(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Análise retomada", res))
}

func (c *analysisController) Save(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Save(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Análise salva", res))
}

func (c *analysisController) Continue(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Continue(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Análise continuada", res))
}

func (c *analysisController) Delete(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	if err := c.analysisService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sessão removida", struct{}{}))
}

func parseSessionID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewAppError(fiber.StatusBadRequest, "Identificador de sessão inválido")
	}
	return id, nil
}
