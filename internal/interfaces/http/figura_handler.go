package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/usecase"
)

// FiguraHandler maneja el catálogo de figuras.
type FiguraHandler struct {
	uc *usecase.FiguraUseCase
}

// NewFiguraHandler construye el handler.
func NewFiguraHandler(uc *usecase.FiguraUseCase) *FiguraHandler {
	return &FiguraHandler{uc: uc}
}

// List godoc
// @Summary      Listar figuras
// @Tags         figuras
// @Produce      json
// @Param        albumId  query  string  false  "Filtrar por álbum"
// @Success      200      {array}  dto.FiguraResponse
// @Router       /api/figuras [get]
func (h *FiguraHandler) List(c *fiber.Ctx) error {
	if albumID := c.Query("albumId"); albumID != "" {
		out, err := h.uc.ListByAlbum(c.Context(), albumID)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear figura
// @Description  El tipo debe existir en el catálogo del álbum. La figura se
// @Description  agrega con contador en cero a los usuarios que ya tienen el álbum.
// @Tags         figuras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFiguraRequest  true  "Datos de la figura"
// @Success      201   {object}  dto.FiguraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/figuras [post]
func (h *FiguraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFiguraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar figura
// @Tags         figuras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la figura"
// @Param        body  body  dto.UpdateFiguraRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FiguraResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/figuras/{id} [put]
func (h *FiguraHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFiguraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar figura
// @Description  Quita la figura del catálogo y de las colecciones de los usuarios.
// @Tags         figuras
// @Security     Bearer
// @Param        id   path  string  true  "ID de la figura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/figuras/{id} [delete]
func (h *FiguraHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
