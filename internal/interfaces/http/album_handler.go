package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/usecase"
)

// AlbumHandler maneja el catálogo de álbumes y sus tipos.
type AlbumHandler struct {
	uc *usecase.AlbumUseCase
}

// NewAlbumHandler construye el handler.
func NewAlbumHandler(uc *usecase.AlbumUseCase) *AlbumHandler {
	return &AlbumHandler{uc: uc}
}

// List godoc
// @Summary      Listar álbumes
// @Tags         albumes
// @Produce      json
// @Success      200  {array}  dto.AlbumResponse
// @Router       /api/albumes [get]
func (h *AlbumHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener álbum por ID
// @Tags         albumes
// @Produce      json
// @Param        id   path  string  true  "ID del álbum"
// @Success      200  {object}  dto.AlbumResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/albumes/{id} [get]
func (h *AlbumHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear álbum
// @Tags         albumes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlbumRequest  true  "Datos del álbum"
// @Success      201   {object}  dto.AlbumResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/albumes [post]
func (h *AlbumHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlbumRequest
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
// @Summary      Actualizar álbum
// @Tags         albumes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del álbum"
// @Param        body  body  dto.UpdateAlbumRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AlbumResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/albumes/{id} [put]
func (h *AlbumHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAlbumRequest
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
// @Summary      Eliminar álbum
// @Tags         albumes
// @Security     Bearer
// @Param        id   path  string  true  "ID del álbum"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/albumes/{id} [delete]
func (h *AlbumHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddTipo godoc
// @Summary      Agregar tipo al catálogo del álbum
// @Tags         albumes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del álbum"
// @Param        body  body  dto.AddTipoRequest  true  "key y label del tipo"
// @Success      200   {array}  entity.TipoEntry
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/albumes/{id}/tipos [post]
func (h *AlbumHandler) AddTipo(c *fiber.Ctx) error {
	var in dto.AddTipoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "key es requerido"})
	}
	out, err := h.uc.AddTipo(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RenameTipo godoc
// @Summary      Renombrar un tipo del álbum
// @Description  Actualiza el catálogo y propaga el nuevo key a las figuras
// @Description  y a las colecciones de los usuarios suscritos al álbum.
// @Tags         albumes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del álbum"
// @Param        key   path  string  true  "Key actual del tipo"
// @Param        body  body  dto.RenameTipoRequest  true  "newKey y/o label"
// @Success      200   {array}  entity.TipoEntry
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/albumes/{id}/tipos/{key} [put]
func (h *AlbumHandler) RenameTipo(c *fiber.Ctx) error {
	var in dto.RenameTipoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RenameTipo(c.Context(), c.Params("id"), c.Params("key"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteTipo godoc
// @Summary      Quitar un tipo del catálogo del álbum
// @Tags         albumes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del álbum"
// @Param        key  path  string  true  "Key del tipo"
// @Success      200  {array}  entity.TipoEntry
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/albumes/{id}/tipos/{key} [delete]
func (h *AlbumHandler) DeleteTipo(c *fiber.Ctx) error {
	out, err := h.uc.DeleteTipo(c.Context(), c.Params("id"), c.Params("key"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
