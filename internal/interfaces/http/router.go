package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JPostigo48/FigurAndoBackend/internal/application/auth"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/collection"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/usecase"
	"github.com/JPostigo48/FigurAndoBackend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	AlbumUC     *usecase.AlbumUseCase
	FiguraUC    *usecase.FiguraUseCase
	InventoryUC *collection.InventoryUseCase
	SetsUC      *collection.SetsUseCase
	OrdersUC    *collection.OrdersUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRol(entity.RolAdmin)

	// Catálogo de álbumes (lectura autenticada, escritura de admin)
	albumHandler := NewAlbumHandler(deps.AlbumUC)
	albumes := protected.Group("/albumes")
	albumes.Get("/", albumHandler.List)
	albumes.Get("/:id", albumHandler.GetByID)
	albumes.Post("/", adminOnly, albumHandler.Create)
	albumes.Put("/:id", adminOnly, albumHandler.Update)
	albumes.Delete("/:id", adminOnly, albumHandler.Delete)
	albumes.Post("/:id/tipos", adminOnly, albumHandler.AddTipo)
	albumes.Put("/:id/tipos/:key", adminOnly, albumHandler.RenameTipo)
	albumes.Delete("/:id/tipos/:key", adminOnly, albumHandler.DeleteTipo)

	// Catálogo de figuras (lectura autenticada, escritura de admin)
	figuraHandler := NewFiguraHandler(deps.FiguraUC)
	figuras := protected.Group("/figuras")
	figuras.Get("/", figuraHandler.List)
	figuras.Post("/", adminOnly, figuraHandler.Create)
	figuras.Put("/:id", adminOnly, figuraHandler.Update)
	figuras.Delete("/:id", adminOnly, figuraHandler.Delete)

	// Colección del usuario (protegido)
	collectionHandler := NewCollectionHandler(deps.InventoryUC, deps.SetsUC)
	usuarios := protected.Group("/usuarios")
	usuarios.Get("/albumes", collectionHandler.ListAlbumes)
	usuarios.Post("/albumes", collectionHandler.AddAlbum)
	usuarios.Get("/figuras", collectionHandler.ListFiguras)
	usuarios.Post("/figuras/adjust", collectionHandler.AdjustFigura)
	usuarios.Get("/sets", collectionHandler.ListSets)
	usuarios.Post("/sets", collectionHandler.CreateSet)

	// Pedidos (protegido)
	orderHandler := NewOrderHandler(deps.OrdersUC)
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Post("/:id/delivered", orderHandler.MarkDelivered)
	orders.Post("/:id/cancelled", orderHandler.Cancel)
}
