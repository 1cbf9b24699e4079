package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/oknastroy/internal/middleware"
	"github.com/example/oknastroy/internal/models"
	"github.com/example/oknastroy/internal/orders"
	"github.com/example/oknastroy/internal/services"
)

// OrderHandler exposes the order lifecycle engine over HTTP.
type OrderHandler struct {
	engine   *orders.Engine
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(engine *orders.Engine, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{engine: engine, telegram: telegram}
}

type createOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName  string                   `json:"customer_name"`
	CustomerPhone string                   `json:"customer_phone"`
	Items         []createOrderItemRequest `json:"items"`
	Comment       string                   `json:"comment"`
}

// CreateOrder places an order. Works for authenticated clients and for
// guest checkout alike; prices are resolved server-side.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input := orders.CreateInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Comment:       req.Comment,
	}

	if principal, ok := middleware.CurrentPrincipal(c); ok {
		id := principal.ID
		input.CustomerID = &id
	}

	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}
		input.Items = append(input.Items, orders.CreateItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.engine.Create(input)
	if err != nil {
		return orderError(err)
	}

	go h.notifyNewOrder(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns the orders visible to the caller.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	list, err := h.engine.List(principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

// GetOrder returns a single order with items and comments.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.engine.Get(id, principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type assignAssemblerRequest struct {
	AssemblerID string `json:"assembler_id"`
}

// AssignAssembler sets the responsible assembler (Admin/Manager).
func (h *OrderHandler) AssignAssembler(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req assignAssemblerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	assemblerID, err := uuid.Parse(req.AssemblerID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid assembler id")
	}

	order, err := h.engine.AssignAssembler(id, assemblerID, principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type acceptanceRequest struct {
	Decision string `json:"decision"`
}

// SetAcceptance records the assigned assembler's accept/reject decision.
func (h *OrderHandler) SetAcceptance(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req acceptanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.engine.SetAcceptance(id, models.AcceptanceStatus(req.Decision), principal)
	if err != nil {
		return orderError(err)
	}

	if order.AcceptanceStatus == models.AcceptanceRejected {
		go h.notifyRejection(order)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order along its workflow.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.engine.UpdateStatus(id, models.OrderStatus(req.Status), principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type itemQuantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateItemQuantity applies a +/- delta to one order line.
func (h *OrderHandler) UpdateItemQuantity(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	var req itemQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.engine.UpdateItemQuantity(id, itemID, req.Delta, principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type manualTotalRequest struct {
	TotalAmount float64 `json:"total_amount"`
}

// SetManualTotal overrides the order total (Admin/Manager).
func (h *OrderHandler) SetManualTotal(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req manualTotalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.engine.SetManualTotal(id, req.TotalAmount, principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type completionDateRequest struct {
	Date string `json:"date"`
}

// SetCompletionDate records the assembler's estimated completion date.
func (h *OrderHandler) SetCompletionDate(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req completionDateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	order, err := h.engine.SetCompletionDate(id, date, principal)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type commentRequest struct {
	Text       string `json:"text"`
	IsInternal bool   `json:"is_internal"`
	Author     string `json:"author"`
}

// AddComment appends a remark to the order thread.
func (h *OrderHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// Clients never write internal notes.
	if principal.Role == models.RoleClient {
		req.IsInternal = false
	}

	order, err := h.engine.AddComment(id, principal, req.Text, req.IsInternal, req.Author)
	if err != nil {
		return orderError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// orderError maps engine error kinds onto HTTP statuses. The engine itself
// never formats user-facing text.
func orderError(err error) error {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, orders.ErrInvalidItem), errors.Is(err, orders.ErrInvalidAssignee):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrInvalidState), errors.Is(err, orders.ErrInvalidTransition), errors.Is(err, orders.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

func (h *OrderHandler) notifyNewOrder(order *models.Order) {
	if h.telegram == nil {
		return
	}

	items := make([]services.OrderItemNotification, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, services.OrderItemNotification{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}

	notification := services.OrderNotification{
		OrderID:       order.ID.String(),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Items:         items,
		TotalAmount:   order.TotalAmount,
	}

	if err := h.telegram.NotifyNewOrder(notification); err != nil {
		log.Printf("[Order] Telegram notification failed: %v", err)
	}
}

func (h *OrderHandler) notifyRejection(order *models.Order) {
	if h.telegram == nil {
		return
	}

	assembler := ""
	if order.AssemblerID != nil {
		assembler = order.AssemblerID.String()
	}

	if err := h.telegram.NotifyOrderRejected(order.ID.String(), assembler); err != nil {
		log.Printf("[Order] Telegram rejection notification failed: %v", err)
	}
}
