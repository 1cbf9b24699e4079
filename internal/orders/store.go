package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/oknastroy/internal/models"
)

// Store persists orders, their items, and their comments. Saving goes
// through an optimistic version check so concurrent writers to the same
// order never interleave.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a Store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get loads an order with its items and comments eagerly.
func (s *Store) Get(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

// List returns orders visible to the actor, newest first. Admin and Manager
// see everything, an Assembler sees orders assigned to them, a Client sees
// their own orders.
func (s *Store) List(actor models.Principal) ([]models.Order, error) {
	query := s.db.Model(&models.Order{}).Preload("Items")

	switch actor.Role {
	case models.RoleAdmin, models.RoleManager:
	case models.RoleAssembler:
		query = query.Where("assembler_id = ?", actor.ID)
	case models.RoleClient:
		query = query.Where("customer_id = ?", actor.ID)
	default:
		return nil, fmt.Errorf("%w: role %s may not list orders", ErrForbidden, actor.Role)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Create persists a new order together with its items and initial comment.
// GORM writes the associations in one transaction, so a failed item insert
// leaves no partial order behind.
func (s *Store) Create(order *models.Order) error {
	if err := s.db.Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// Save writes the order header and replaces its item rows in a single
// transaction. The version column guards against a concurrent writer: a
// stale in-memory copy fails with ErrConflict and nothing is written.
// Comments are insert-only and never touched here.
func (s *Store) Save(order *models.Order) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		current := order.Version
		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, current).
			Updates(map[string]interface{}{
				"status":                    order.Status,
				"acceptance_status":         order.AcceptanceStatus,
				"assembler_id":              order.AssemblerID,
				"estimated_completion_date": order.EstimatedCompletionDate,
				"total_amount":              order.TotalAmount,
				"version":                   current + 1,
				"updated_at":                time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("update order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		order.Version = current + 1

		keep := make([]uuid.UUID, 0, len(order.Items))
		for i := range order.Items {
			if order.Items[i].ID == uuid.Nil {
				order.Items[i].ID = uuid.New()
			}
			order.Items[i].OrderID = order.ID
			keep = append(keep, order.Items[i].ID)
		}

		prune := tx.Where("order_id = ?", order.ID)
		if len(keep) > 0 {
			prune = prune.Where("id NOT IN ?", keep)
		}
		if err := prune.Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("prune items: %w", err)
		}

		for i := range order.Items {
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("save item: %w", err)
			}
		}
		return nil
	})
}

// AppendComment inserts a comment and refreshes the order's updated_at.
// Existing comments are never modified.
func (s *Store) AppendComment(orderID uuid.UUID, comment *models.OrderComment) error {
	comment.OrderID = orderID
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("append comment: %w", err)
		}
		if err := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Update("updated_at", time.Now()).Error; err != nil {
			return fmt.Errorf("touch order: %w", err)
		}
		return nil
	})
}

// ProductByID resolves a catalog product for item snapshotting.
func (s *Store) ProductByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s does not exist", ErrInvalidItem, id)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}

// AssemblerByID resolves a user and verifies they hold the Assembler role.
func (s *Store) AssemblerByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s does not exist", ErrInvalidAssignee, id)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.Role != models.RoleAssembler {
		return nil, fmt.Errorf("%w: user %s has role %s", ErrInvalidAssignee, id, user.Role)
	}
	return &user, nil
}
