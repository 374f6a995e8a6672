package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/collection"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
)

// OrderHandler maneja los pedidos del usuario autenticado.
type OrderHandler struct {
	uc *collection.OrdersUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *collection.OrdersUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Reserva el stock de las figuras pedidas. Si alguna no alcanza,
// @Description  el pedido se rechaza sin descontar nada.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.uc.CreateOrder(c.Context(), GetUserID(c), in); err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "pedido creado"})
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        albumId  query  string  false  "Filtrar por álbum"
// @Success      200      {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListOrders(c.Context(), GetUserID(c), c.Query("albumId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// MarkDelivered godoc
// @Summary      Marcar pedido como entregado
// @Description  Solo un pedido pendiente puede entregarse; el stock reservado
// @Description  queda consumido.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivered [post]
func (h *OrderHandler) MarkDelivered(c *fiber.Ctx) error {
	if err := h.uc.MarkDelivered(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido entregado"})
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Solo un pedido pendiente puede cancelarse; el stock reservado
// @Description  vuelve a la colección del usuario.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancelled [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.CancelOrder(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido cancelado"})
}
