package controller

import (
	"fmt"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Results(ctx *fiber.Ctx) error
	ExportJSON(ctx *fiber.Ctx) error
	ExportPDF(ctx *fiber.Ctx) error
	EmailReport(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Get(":id/results", c.Results)
	h.Get(":id/export/json", c.ExportJSON)
	h.Get(":id/export/pdf", c.ExportPDF)
	h.Post(":id/export/email", c.EmailReport)
}

func (c *exportController) Results(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.exportService.Results(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Resultados da análise", res))
}

func (c *exportController) ExportJSON(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.exportService.ExportJSON(ctx.Context(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analise_%s.json"`, id))
	return ctx.JSON(res)
}

func (c *exportController) ExportPDF(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	pdf, fileName, err := c.exportService.ExportPDF(ctx.Context(), id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Send(pdf)
}

func (c *exportController) EmailReport(ctx *fiber.Ctx) error {
	id, err := parseSessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.EmailReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.exportService.EmailReport(ctx.Context(), id, req.Email); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Relatório enviado por e-mail", struct{}{}))
}
