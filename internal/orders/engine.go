package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/oknastroy/internal/models"
)

// Engine validates and applies every order mutation. It is the sole writer
// of order status, acceptance, assignment, completion date, and item
// quantities; each operation checks the actor's permission and the order's
// current state before anything is written.
type Engine struct {
	store *Store
}

// NewEngine constructs an Engine over the given store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// CreateItemInput references a catalog product by id. Price and name are
// resolved server-side, never taken from the caller.
type CreateItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateInput carries everything needed to place an order. CustomerID is
// nil for guest checkout.
type CreateInput struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	Items         []CreateItemInput
	Comment       string
}

// Create places a new order. Unit prices and product names are snapshotted
// from the catalog at call time and the total is computed from them, so a
// tampered client-side total has no effect.
func (e *Engine) Create(input CreateInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrInvalidItem)
	}

	order := &models.Order{
		CustomerID:       input.CustomerID,
		CustomerName:     input.CustomerName,
		CustomerPhone:    input.CustomerPhone,
		Status:           models.StatusPending,
		AcceptanceStatus: models.AcceptancePending,
	}

	var total float64
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidItem)
		}
		product, err := e.store.ProductByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			UnitPrice: product.BasePrice,
			Quantity:  in.Quantity,
		})
		total += product.BasePrice * float64(in.Quantity)
	}
	order.TotalAmount = total

	if strings.TrimSpace(input.Comment) != "" {
		order.Comments = append(order.Comments, models.OrderComment{
			Author:     input.CustomerName,
			Text:       input.Comment,
			IsInternal: false,
		})
	}

	if err := e.store.Create(order); err != nil {
		return nil, err
	}
	return e.store.Get(order.ID)
}

// AssignAssembler sets the assembler responsible for an order. Reassignment
// always resets acceptance to Pending and clears the previously promised
// completion date.
func (e *Engine) AssignAssembler(orderID, assemblerID uuid.UUID, actor models.Principal) (*models.Order, error) {
	if !actor.Role.CanManageOrders() {
		return nil, fmt.Errorf("%w: only admin or manager may assign assemblers", ErrForbidden)
	}

	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	assembler, err := e.store.AssemblerByID(assemblerID)
	if err != nil {
		return nil, err
	}

	order.AssemblerID = &assembler.ID
	order.AcceptanceStatus = models.AcceptancePending
	order.EstimatedCompletionDate = nil

	if err := e.store.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetAcceptance records the assigned assembler's decision. The decision is
// final until a reassignment resets it; rejection has no automatic side
// effect on assignment or status, it is surfaced to managers separately.
func (e *Engine) SetAcceptance(orderID uuid.UUID, decision models.AcceptanceStatus, actor models.Principal) (*models.Order, error) {
	if decision != models.AcceptanceAccepted && decision != models.AcceptanceRejected {
		return nil, fmt.Errorf("%w: decision must be Accepted or Rejected", ErrInvalidState)
	}

	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !e.isAssignedAssembler(order, actor) {
		return nil, fmt.Errorf("%w: only the assigned assembler may decide acceptance", ErrForbidden)
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}
	if order.AcceptanceStatus != models.AcceptancePending {
		return nil, fmt.Errorf("%w: acceptance already decided as %s", ErrInvalidState, order.AcceptanceStatus)
	}

	order.AcceptanceStatus = decision
	if err := e.store.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// assemblerTransitions is the forward-only path an assembler may walk.
var assemblerTransitions = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:    models.StatusProcessing,
	models.StatusProcessing: models.StatusCompleted,
}

// UpdateStatus moves an order to a new status. Admin and Manager may set
// any status on a non-terminal order; the assigned assembler may only
// progress Pending -> Processing -> Completed once they have accepted.
func (e *Engine) UpdateStatus(orderID uuid.UUID, newStatus models.OrderStatus, actor models.Principal) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidState, string(newStatus))
	}

	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
	}

	switch actor.Role {
	case models.RoleAdmin, models.RoleManager:
	case models.RoleAssembler:
		if !e.isAssignedAssembler(order, actor) {
			return nil, fmt.Errorf("%w: order is assigned to another assembler", ErrForbidden)
		}
		if order.AcceptanceStatus != models.AcceptanceAccepted {
			return nil, fmt.Errorf("%w: order has not been accepted", ErrForbidden)
		}
		if assemblerTransitions[order.Status] != newStatus {
			return nil, fmt.Errorf("%w: assembler may not move %s to %s", ErrInvalidState, order.Status, newStatus)
		}
	default:
		return nil, fmt.Errorf("%w: role %s may not change order status", ErrForbidden, actor.Role)
	}

	order.Status = newStatus
	if err := e.store.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateItemQuantity applies a delta to one line item. The quantity is
// clamped at zero and a line reaching zero is removed entirely. The total
// is recomputed from the remaining items in the same write, so no stale
// total is ever observable.
func (e *Engine) UpdateItemQuantity(orderID, itemID uuid.UUID, delta int, actor models.Principal) (*models.Order, error) {
	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if err := e.requireEditor(order, actor); err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	idx := -1
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}

	quantity := order.Items[idx].Quantity + delta
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
	} else {
		order.Items[idx].Quantity = quantity
	}
	order.TotalAmount = itemsTotal(order.Items)

	if err := e.store.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetManualTotal overrides the computed total directly, for negotiated
// pricing. Item rows are untouched; a subsequent item edit recomputes the
// total from items and discards the override.
func (e *Engine) SetManualTotal(orderID uuid.UUID, newTotal float64, actor models.Principal) (*models.Order, error) {
	if !actor.Role.CanManageOrders() {
		return nil, fmt.Errorf("%w: only admin or manager may override the total", ErrForbidden)
	}
	if newTotal < 0 {
		return nil, fmt.Errorf("%w: total cannot be negative", ErrInvalidState)
	}

	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	order.TotalAmount = newTotal
	if err := e.store.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetCompletionDate records the assigned assembler's estimated completion
// date.
func (e *Engine) SetCompletionDate(orderID uuid.UUID, date time.Time, actor models.Principal) (*models.Order, error) {
	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !e.isAssignedAssembler(order, actor) {
		return nil, fmt.Errorf("%w: only the assigned assembler may set the completion date", ErrForbidden)
	}
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	order.EstimatedCompletionDate = &date
	if err := e.store.Save(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddComment appends a remark to the order's comment thread. Only actors
// with visibility into the order may comment; the returned order passes
// through the same view rules as Get. Comments stay appendable after the
// order reaches a terminal status.
func (e *Engine) AddComment(orderID uuid.UUID, actor models.Principal, text string, isInternal bool, author string) (*models.Order, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is empty", ErrInvalidItem)
	}

	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	if _, err := e.viewFor(order, actor); err != nil {
		return nil, err
	}

	comment := &models.OrderComment{
		Author:     author,
		Text:       text,
		IsInternal: isInternal,
	}
	if err := e.store.AppendComment(order.ID, comment); err != nil {
		return nil, err
	}

	order, err = e.store.Get(order.ID)
	if err != nil {
		return nil, err
	}
	return e.viewFor(order, actor)
}

// Get returns an order if the actor may see it. Clients receive the order
// with internal comments stripped.
func (e *Engine) Get(orderID uuid.UUID, actor models.Principal) (*models.Order, error) {
	order, err := e.store.Get(orderID)
	if err != nil {
		return nil, err
	}
	return e.viewFor(order, actor)
}

// viewFor applies the order-visibility rules: Admin and Manager see every
// order, the assigned assembler sees theirs, the owning customer sees theirs
// with internal comments stripped. Everyone else gets ErrForbidden.
func (e *Engine) viewFor(order *models.Order, actor models.Principal) (*models.Order, error) {
	switch actor.Role {
	case models.RoleAdmin, models.RoleManager:
		return order, nil
	case models.RoleAssembler:
		if order.AssemblerID != nil && *order.AssemblerID == actor.ID {
			return order, nil
		}
	case models.RoleClient:
		if order.CustomerID != nil && *order.CustomerID == actor.ID {
			visible := order.Comments[:0:0]
			for _, comment := range order.Comments {
				if !comment.IsInternal {
					visible = append(visible, comment)
				}
			}
			order.Comments = visible
			return order, nil
		}
	}
	return nil, fmt.Errorf("%w: no access to order %s", ErrForbidden, order.ID)
}

// List returns the orders visible to the actor, newest first.
func (e *Engine) List(actor models.Principal) ([]models.Order, error) {
	return e.store.List(actor)
}

func (e *Engine) isAssignedAssembler(order *models.Order, actor models.Principal) bool {
	return actor.Role == models.RoleAssembler &&
		order.AssemblerID != nil &&
		*order.AssemblerID == actor.ID
}

// requireEditor gates item edits: Admin, Manager, or the assigned assembler.
func (e *Engine) requireEditor(order *models.Order, actor models.Principal) error {
	if actor.Role.CanManageOrders() || e.isAssignedAssembler(order, actor) {
		return nil
	}
	return fmt.Errorf("%w: role %s may not edit order items", ErrForbidden, actor.Role)
}

func itemsTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
