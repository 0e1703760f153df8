package handler

import (
	"errors"

	"github.com/annrbk/Auth-app-backend/internal/account/dto"
	"github.com/annrbk/Auth-app-backend/internal/account/service"
	autherror "github.com/annrbk/Auth-app-backend/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	accountService *service.AccountService
	validate       *validator.Validate
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		validate:       validator.New(),
	}
}

func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	_, err := h.accountService.Register(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": autherror.ErrEmailAlreadyInUse.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	result, err := h.accountService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": autherror.ErrInvalidCredentials.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to log in",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   result.Token,
		"userId":  result.AccountID,
	})
}

// ValidateToken is a pure authentication probe; the guard has already
// resolved the claims by the time it runs.
func (h *AccountHandler) ValidateToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token is valid",
		"userId":  c.Locals(accountIDKey),
	})
}

func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accountService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *AccountHandler) Block(c *fiber.Ctx) error {
	return h.setBlocked(c, true, "User blocked successfully")
}

func (h *AccountHandler) Unblock(c *fiber.Ctx) error {
	return h.setBlocked(c, false, "User unblocked successfully")
}

func (h *AccountHandler) setBlocked(c *fiber.Ctx, blocked bool, message string) error {
	id := c.Params("id")

	if err := h.accountService.SetBlocked(c.UserContext(), id, blocked); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.accountService.Delete(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
