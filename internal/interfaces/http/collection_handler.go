package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/collection"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
)

// CollectionHandler maneja la colección del usuario autenticado:
// álbumes suscritos, contadores de figuras y sets armados.
type CollectionHandler struct {
	inventory *collection.InventoryUseCase
	sets      *collection.SetsUseCase
}

// NewCollectionHandler construye el handler.
func NewCollectionHandler(inventory *collection.InventoryUseCase, sets *collection.SetsUseCase) *CollectionHandler {
	return &CollectionHandler{inventory: inventory, sets: sets}
}

// ListAlbumes godoc
// @Summary      Listar los álbumes del usuario
// @Tags         coleccion
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlbumResponse
// @Router       /api/usuarios/albumes [get]
func (h *CollectionHandler) ListAlbumes(c *fiber.Ctx) error {
	out, err := h.inventory.ListAlbumes(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddAlbum godoc
// @Summary      Suscribir al usuario a un álbum
// @Description  Agrega el álbum y todas sus figuras con contador en cero.
// @Description  Repetir la operación no altera los contadores existentes.
// @Tags         coleccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddAlbumRequest  true  "ID del álbum"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/albumes [post]
func (h *CollectionHandler) AddAlbum(c *fiber.Ctx) error {
	var in dto.AddAlbumRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AlbumID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "albumId es requerido"})
	}
	out, err := h.inventory.AddAlbum(c.Context(), GetUserID(c), in.AlbumID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListFiguras godoc
// @Summary      Listar las figuras del usuario con sus contadores
// @Tags         coleccion
// @Security     Bearer
// @Produce      json
// @Param        albumId  query  string  false  "Filtrar por álbum"
// @Success      200      {array}  dto.FiguraUsuarioResponse
// @Router       /api/usuarios/figuras [get]
func (h *CollectionHandler) ListFiguras(c *fiber.Ctx) error {
	out, err := h.inventory.ListFiguras(c.Context(), GetUserID(c), c.Query("albumId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AdjustFigura godoc
// @Summary      Ajustar el contador de una figura
// @Description  Aplica un delta positivo o negativo; el contador nunca baja de cero.
// @Tags         coleccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustFiguraRequest  true  "figuraId y delta"
// @Success      200   {object}  dto.AdjustFiguraResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/figuras/adjust [post]
func (h *CollectionHandler) AdjustFigura(c *fiber.Ctx) error {
	var in dto.AdjustFiguraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FiguraID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "figuraId es requerido"})
	}
	out, err := h.inventory.AdjustFigura(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListSets godoc
// @Summary      Listar los sets armados del usuario
// @Tags         coleccion
// @Security     Bearer
// @Produce      json
// @Param        albumId  query  string  false  "Filtrar por álbum"
// @Success      200      {array}  dto.SetResponse
// @Router       /api/usuarios/sets [get]
func (h *CollectionHandler) ListSets(c *fiber.Ctx) error {
	out, err := h.sets.ListSets(c.Context(), GetUserID(c), c.Query("albumId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CreateSet godoc
// @Summary      Armar un set de un tipo
// @Description  Consume una unidad de cada figura del tipo. Si alguna figura
// @Description  no tiene stock la operación falla sin consumir nada.
// @Tags         coleccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSetRequest  true  "albumId y tipo"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/sets [post]
func (h *CollectionHandler) CreateSet(c *fiber.Ctx) error {
	var in dto.CreateSetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AlbumID == "" || in.Tipo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "albumId y tipo son requeridos"})
	}
	out, err := h.sets.CreateSet(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
