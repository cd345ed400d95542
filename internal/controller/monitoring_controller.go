package controller

import (
	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMonitoringController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Providers(ctx *fiber.Ctx) error
	ResetAI(ctx *fiber.Ctx) error
	ResetSearch(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type monitoringController struct {
	monitoringService service.IMonitoringService
}

func NewMonitoringController(monitoringService service.IMonitoringService) IMonitoringController {
	return &monitoringController{
		monitoringService: monitoringService,
	}
}

func (c *monitoringController) RegisterRoutes(r fiber.Router) {
	// Health stays open for load balancer probes; the rest needs the
	// monitoring token.
	r.Get("/health", c.Health)

	h := r.Group("/monitoring")
	h.Use(serverutils.AdminJwtMiddleware)
	h.Get("health", c.Health)
	h.Get("providers", c.Providers)
	h.Post("providers/ai/reset", c.ResetAI)
	h.Post("providers/search/reset", c.ResetSearch)
	h.Get("logs", c.Logs)
}

func (c *monitoringController) Health(ctx *fiber.Ctx) error {
	res := c.monitoringService.Health(ctx.Context())
	status := fiber.StatusOK
	if res.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return ctx.Status(status).JSON(serverutils.SuccessResponse("Health", res))
}

func (c *monitoringController) Providers(ctx *fiber.Ctx) error {
	res := c.monitoringService.ProvidersStatus(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Provider status", res))
}

func (c *monitoringController) ResetAI(ctx *fiber.Ctx) error {
	var req dto.ResetProviderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	c.monitoringService.ResetAIProvider(ctx.Context(), req.Name)
	return ctx.JSON(serverutils.SuccessResponse("AI provider errors reset", struct{}{}))
}

func (c *monitoringController) ResetSearch(ctx *fiber.Ctx) error {
	var req dto.ResetProviderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	c.monitoringService.ResetSearchEngine(ctx.Context(), req.Name)
	return ctx.JSON(serverutils.SuccessResponse("Search engine errors reset", struct{}{}))
}

func (c *monitoringController) Logs(ctx *fiber.Ctx) error {
	var q dto.LogsQuery
	if err := ctx.QueryParser(&q); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}

	res, err := c.monitoringService.Logs(ctx.Context(), &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Application logs", res))
}
