package controller

import (
	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/pkg/serverutils"
	"ai-market-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	Settings(ctx *fiber.Ctx) error
	SaveSettings(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user")
	h.Get("profile", c.Profile)
	h.Put("profile", c.UpdateProfile)
	h.Get("settings", c.Settings)
	h.Post("settings", c.SaveSettings)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	res, err := c.userService.Profile(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Perfil do usuário", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateUserProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Perfil atualizado", res))
}

func (c *userController) Settings(ctx *fiber.Ctx) error {
	res, err := c.userService.Settings(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Configurações do usuário", res))
}

func (c *userController) SaveSettings(ctx *fiber.Ctx) error {
	var req dto.SaveUserSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.SaveSettings(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Configurações salvas", res))
}
