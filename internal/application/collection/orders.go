package collection

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/dto"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/repository"
	"github.com/JPostigo48/FigurAndoBackend/pkg/logger"
)

// OrdersUseCase la máquina de estados de pedidos. Un pedido nace pending
// reservando (descontando) stock; delivered y cancelled son terminales:
// delivered no toca stock, cancelled repone exactamente la reserva.
type OrdersUseCase struct {
	txRunner    TxRunner
	figuraRepo  repository.FiguraRepository
	usuarioRepo repository.UsuarioRepository
	log         *logger.Logger
}

// NewOrdersUseCase construye el caso de uso.
func NewOrdersUseCase(
	txRunner TxRunner,
	figuraRepo repository.FiguraRepository,
	usuarioRepo repository.UsuarioRepository,
	log *logger.Logger,
) *OrdersUseCase {
	return &OrdersUseCase{
		txRunner:    txRunner,
		figuraRepo:  figuraRepo,
		usuarioRepo: usuarioRepo,
		log:         log,
	}
}

// CreateOrder valida los items, verifica stock suficiente para TODOS antes
// de descontar nada (todo-o-nada) y registra el pedido como pending con la
// reserva ya aplicada. Devuelve el ID del pedido creado.
func (uc *OrdersUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (string, error) {
	if in.AlbumID == "" || in.Customer == "" || len(in.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	if in.Total.LessThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.FiguraID == "" || it.Quantity < 1 {
			return "", domain.ErrInvalidInput
		}
	}

	orderID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		albumRepo repository.AlbumRepository,
		figuraRepo repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		album, err := albumRepo.GetByID(ctx, in.AlbumID)
		if err != nil {
			return err
		}
		if album == nil {
			return fmt.Errorf("%w: álbum %s", domain.ErrNotFound, in.AlbumID)
		}
		usuario, err := usuarioRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if usuario == nil {
			return domain.ErrUsuarioNotFound
		}
		ids := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.FiguraID)
		}
		figuras, err := figuraRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		// Chequeo completo de existencia y stock antes de descontar nada.
		// La demanda se agrega por figura: items repetidos sobre la misma
		// figura deben caber juntos en el stock, no uno por uno.
		demanda := make(map[string]int, len(in.Items))
		for _, it := range in.Items {
			demanda[it.FiguraID] += it.Quantity
		}
		for _, it := range in.Items {
			fig, ok := figuras[it.FiguraID]
			if !ok {
				return fmt.Errorf("%w: figura %s", domain.ErrNotFound, it.FiguraID)
			}
			entry := usuario.FindFigura(it.FiguraID)
			if entry == nil || entry.Count < demanda[it.FiguraID] {
				return fmt.Errorf("%w: figura %s", domain.ErrInsufficientStock, fig.Code)
			}
		}
		// Reserva: descuenta cada item y registra el pedido pending.
		items := make([]entity.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			usuario.FindFigura(it.FiguraID).Count -= it.Quantity
			items = append(items, entity.OrderItem{FiguraID: it.FiguraID, Quantity: it.Quantity})
		}
		usuario.Orders = append(usuario.Orders, entity.Order{
			ID:        orderID,
			AlbumID:   in.AlbumID,
			Customer:  in.Customer,
			Items:     items,
			Total:     in.Total,
			Status:    entity.OrderPending,
			CreatedAt: time.Now(),
		})
		return usuarioRepo.Save(ctx, usuario)
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// MarkDelivered pasa un pedido pending a delivered. No toca stock: la
// reserva se consumió al crear el pedido. Desde un estado terminal falla
// con ErrInvalidState.
func (uc *OrdersUseCase) MarkDelivered(ctx context.Context, userID, orderID string) error {
	return uc.transition(ctx, userID, orderID, entity.OrderDelivered)
}

// CancelOrder pasa un pedido pending a cancelled y repone cada cantidad a
// su entrada de inventario. Si una entrada ya no existe (la figura fue
// borrada entre medias) esa reposición se descarta con un log; no es fatal.
func (uc *OrdersUseCase) CancelOrder(ctx context.Context, userID, orderID string) error {
	return uc.transition(ctx, userID, orderID, entity.OrderCancelled)
}

func (uc *OrdersUseCase) transition(ctx context.Context, userID, orderID, target string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.AlbumRepository,
		_ repository.FiguraRepository,
		usuarioRepo repository.UsuarioRepository,
	) error {
		usuario, err := usuarioRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if usuario == nil {
			return domain.ErrUsuarioNotFound
		}
		order := usuario.FindOrder(orderID)
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
		}
		if order.Status != entity.OrderPending {
			return fmt.Errorf("%w: %s", domain.ErrInvalidState, order.Status)
		}
		order.Status = target
		if target == entity.OrderCancelled {
			for _, it := range order.Items {
				if _, ok := usuario.ApplyDelta(it.FiguraID, it.Quantity); !ok {
					uc.log.Warn().
						Str("usuario", userID).
						Str("pedido", orderID).
						Str("figura", it.FiguraID).
						Int("quantity", it.Quantity).
						Msg("reposición descartada: la figura ya no está en el inventario")
				}
			}
		}
		return usuarioRepo.Save(ctx, usuario)
	})
}

// ListOrders devuelve los pedidos del usuario para un álbum, del más
// reciente al más antiguo, con las figuras de cada línea proyectadas.
func (uc *OrdersUseCase) ListOrders(ctx context.Context, userID, albumID string) ([]dto.OrderResponse, error) {
	if albumID == "" {
		return nil, domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	orders := make([]entity.Order, 0, len(usuario.Orders))
	ids := make([]string, 0)
	for _, o := range usuario.Orders {
		if o.AlbumID != albumID {
			continue
		}
		orders = append(orders, o)
		for _, it := range o.Items {
			ids = append(ids, it.FiguraID)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	figuras, err := uc.figuraRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]dto.OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			item := dto.OrderItemResponse{Quantity: it.Quantity}
			if f, ok := figuras[it.FiguraID]; ok {
				item.Figura = toFiguraResponse(f)
			} else {
				// Figura borrada después del pedido: se conserva la referencia.
				item.Figura = dto.FiguraResponse{ID: it.FiguraID}
			}
			items = append(items, item)
		}
		out = append(out, dto.OrderResponse{
			ID:        o.ID,
			Customer:  o.Customer,
			Items:     items,
			Total:     o.Total,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}
