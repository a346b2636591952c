package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/auth"
	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
)

// AuthHandler trata autenticação e gestão de armeiros.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// armorerName resolve o nome de apresentação do armeiro autenticado para a
// auditoria; cai para a matrícula se o cadastro não existir (sessão de
// instalação).
func (h *AuthHandler) armorerName(c *fiber.Ctx) string {
	user, err := h.uc.GetByID(GetUserID(c))
	if err != nil || user == nil {
		return GetMatricula(c)
	}
	return user.DisplayName
}

// SetupRequired godoc
// @Summary      Verificar se a instalação está pendente
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SetupRequired
// @Router       /api/auth/setup [get]
func (h *AuthHandler) SetupRequired(c *fiber.Ctx) error {
	out, err := h.uc.SetupRequired()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Autenticar por matrícula e senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Matricula == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "matrícula e senha são obrigatórias"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Cadastrar armeiro
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Dados do armeiro"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateUser(h.armorerName(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Listar armeiros
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateUser godoc
// @Summary      Atualizar armeiro
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do armeiro"
// @Param        body  body  dto.UpdateUserRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	// Auto-rebaixamento trancaria a sessão atual fora da gestão de armeiros.
	if in.Role != nil && id == GetUserID(c) && *in.Role != GetRole(c) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "não é possível alterar o próprio papel"})
	}
	out, err := h.uc.UpdateUser(h.armorerName(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "armeiro não encontrado"})
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Excluir armeiro
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "ID do armeiro"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if c.Params("id") == GetUserID(c) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "não é possível excluir o próprio cadastro"})
	}
	if err := h.uc.DeleteUser(h.armorerName(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
