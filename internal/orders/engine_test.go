package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/oknastroy/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderComment{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupEngine(t *testing.T) (*Engine, *gorm.DB) {
	db := setupTestDB(t)
	return NewEngine(NewStore(db)), db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		BasePrice: price,
		ImageURL:  "https://cdn.example.com/" + name + ".jpg",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func principal(user models.User) models.Principal {
	return models.Principal{ID: user.ID, Role: user.Role}
}

func TestCreateOrderComputesTotal(t *testing.T) {
	engine, db := setupEngine(t)

	window := seedProduct(t, db, "window-standard", 5600)
	handle := seedProduct(t, db, "handle-basic", 600)

	order, err := engine.Create(CreateInput{
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+7 900 000-00-00",
		Items: []CreateItemInput{
			{ProductID: window.ID, Quantity: 2},
			{ProductID: handle.ID, Quantity: 1},
		},
		Comment: "Deliver before Friday",
	})
	require.NoError(t, err)

	assert.Equal(t, 11800.0, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.AcceptancePending, order.AcceptanceStatus)
	assert.Nil(t, order.AssemblerID)
	assert.Len(t, order.Items, 2)

	// Product data is snapshotted onto the items.
	byProduct := make(map[uuid.UUID]models.OrderItem)
	for _, item := range order.Items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, "window-standard", byProduct[window.ID].Name)
	assert.Equal(t, 5600.0, byProduct[window.ID].UnitPrice)
	assert.Equal(t, 2, byProduct[window.ID].Quantity)
	assert.Equal(t, 600.0, byProduct[handle.ID].UnitPrice)

	require.Len(t, order.Comments, 1)
	assert.Equal(t, "Deliver before Friday", order.Comments[0].Text)
	assert.Equal(t, "Ivan Petrov", order.Comments[0].Author)
	assert.False(t, order.Comments[0].IsInternal)
}

func TestCreateOrderSkipsEmptyComment(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)

	order, err := engine.Create(CreateInput{
		CustomerName: "Guest",
		Items:        []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
		Comment:      "   ",
	})
	require.NoError(t, err)
	assert.Empty(t, order.Comments)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)

	_, err := engine.Create(CreateInput{CustomerName: "Guest"})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidItem)

	// A failed item resolution leaves no partial order behind.
	_, err = engine.Create(CreateInput{
		Items: []CreateItemInput{
			{ProductID: window.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidItem)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderSnapshotsPrice(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 5000)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// A later catalog price change must not alter the stored order.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", window.ID).
		Update("base_price", 9000).Error)

	reloaded, err := NewStore(db).Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, reloaded.Items[0].UnitPrice)
	assert.Equal(t, 5000.0, reloaded.TotalAmount)
}

func TestAssignAssembler(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	client := seedUser(t, db, "client", models.RoleClient)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(client))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.AssignAssembler(order.ID, client.ID, principal(manager))
	assert.ErrorIs(t, err, ErrInvalidAssignee)

	_, err = engine.AssignAssembler(order.ID, uuid.New(), principal(manager))
	assert.ErrorIs(t, err, ErrInvalidAssignee)

	updated, err := engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)
	require.NotNil(t, updated.AssemblerID)
	assert.Equal(t, assembler.ID, *updated.AssemblerID)
	assert.Equal(t, models.AcceptancePending, updated.AcceptanceStatus)
}

func TestReassignmentResetsAcceptance(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	first := seedUser(t, db, "first-assembler", models.RoleAssembler)
	second := seedUser(t, db, "second-assembler", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.AssignAssembler(order.ID, first.ID, principal(manager))
	require.NoError(t, err)

	_, err = engine.SetAcceptance(order.ID, models.AcceptanceRejected, principal(first))
	require.NoError(t, err)

	_, err = engine.SetCompletionDate(order.ID, time.Now().AddDate(0, 0, 7), principal(first))
	assert.NoError(t, err)

	// Reassignment resets acceptance even from Rejected and clears the date.
	updated, err := engine.AssignAssembler(order.ID, second.ID, principal(manager))
	require.NoError(t, err)
	assert.Equal(t, models.AcceptancePending, updated.AcceptanceStatus)
	assert.Nil(t, updated.EstimatedCompletionDate)

	// The replaced assembler lost every privilege on the order.
	_, err = engine.SetAcceptance(order.ID, models.AcceptanceAccepted, principal(first))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.SetAcceptance(order.ID, models.AcceptanceAccepted, principal(second))
	assert.NoError(t, err)
}

func TestSetAcceptanceIsFinalUntilReassignment(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// No decision before an assignment exists.
	_, err = engine.SetAcceptance(order.ID, models.AcceptanceAccepted, principal(assembler))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)

	_, err = engine.SetAcceptance(order.ID, models.AcceptanceStatus("Maybe"), principal(assembler))
	assert.ErrorIs(t, err, ErrInvalidState)

	updated, err := engine.SetAcceptance(order.ID, models.AcceptanceAccepted, principal(assembler))
	require.NoError(t, err)
	assert.Equal(t, models.AcceptanceAccepted, updated.AcceptanceStatus)

	_, err = engine.SetAcceptance(order.ID, models.AcceptanceRejected, principal(assembler))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateStatusAssemblerFlow(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)
	stranger := seedUser(t, db, "other-assembler", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)

	// No progression before acceptance.
	_, err = engine.UpdateStatus(order.ID, models.StatusProcessing, principal(assembler))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.SetAcceptance(order.ID, models.AcceptanceAccepted, principal(assembler))
	require.NoError(t, err)

	// Forward-only: skipping Processing is rejected.
	_, err = engine.UpdateStatus(order.ID, models.StatusCompleted, principal(assembler))
	assert.ErrorIs(t, err, ErrInvalidState)

	updated, err := engine.UpdateStatus(order.ID, models.StatusProcessing, principal(assembler))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)

	// An assembler who is not assigned gets Forbidden.
	_, err = engine.UpdateStatus(order.ID, models.StatusCompleted, principal(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	// Assemblers never cancel.
	_, err = engine.UpdateStatus(order.ID, models.StatusCancelled, principal(assembler))
	assert.ErrorIs(t, err, ErrInvalidState)

	updated, err = engine.UpdateStatus(order.ID, models.StatusCompleted, principal(assembler))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestUpdateStatusTerminalOrdersAreImmutable(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	client := seedUser(t, db, "client", models.RoleClient)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.UpdateStatus(order.ID, models.OrderStatus("Shipped"), principal(admin))
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = engine.UpdateStatus(order.ID, models.StatusProcessing, principal(client))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.UpdateStatus(order.ID, models.StatusCompleted, principal(admin))
	require.NoError(t, err)

	_, err = engine.UpdateStatus(order.ID, models.StatusProcessing, principal(admin))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The failed transition changed nothing.
	reloaded, err := NewStore(db).Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, reloaded.Status)
}

func TestUpdateItemQuantity(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 5600)
	handle := seedProduct(t, db, "handle", 600)
	admin := seedUser(t, db, "admin", models.RoleAdmin)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{
			{ProductID: window.ID, Quantity: 2},
			{ProductID: handle.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 11800.0, order.TotalAmount)

	var windowItem models.OrderItem
	for _, item := range order.Items {
		if item.ProductID == window.ID {
			windowItem = item
		}
	}

	// delta 0 is a no-op for both quantity and total.
	updated, err := engine.UpdateItemQuantity(order.ID, windowItem.ID, 0, principal(admin))
	require.NoError(t, err)
	assert.Equal(t, 11800.0, updated.TotalAmount)
	assert.Len(t, updated.Items, 2)

	updated, err = engine.UpdateItemQuantity(order.ID, windowItem.ID, -1, principal(admin))
	require.NoError(t, err)
	assert.Equal(t, 6200.0, updated.TotalAmount)

	// Reaching zero removes the row entirely.
	updated, err = engine.UpdateItemQuantity(order.ID, windowItem.ID, -5, principal(admin))
	require.NoError(t, err)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 600.0, updated.TotalAmount)

	var rows int64
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	_, err = engine.UpdateItemQuantity(order.ID, windowItem.ID, 1, principal(admin))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItemQuantityPermissions(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	client := seedUser(t, db, "client", models.RoleClient)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)
	stranger := seedUser(t, db, "stranger", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	_, err = engine.UpdateItemQuantity(order.ID, itemID, 1, principal(client))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.UpdateItemQuantity(order.ID, itemID, 1, principal(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)

	updated, err := engine.UpdateItemQuantity(order.ID, itemID, 1, principal(assembler))
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Items[0].Quantity)
	assert.Equal(t, 4000.0, updated.TotalAmount)

	_, err = engine.UpdateStatus(order.ID, models.StatusCancelled, principal(manager))
	require.NoError(t, err)

	_, err = engine.UpdateItemQuantity(order.ID, itemID, 1, principal(manager))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSetManualTotal(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 5000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = engine.SetManualTotal(order.ID, 9000, principal(assembler))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.SetManualTotal(order.ID, -1, principal(manager))
	assert.ErrorIs(t, err, ErrInvalidState)

	updated, err := engine.SetManualTotal(order.ID, 9000, principal(manager))
	require.NoError(t, err)
	assert.Equal(t, 9000.0, updated.TotalAmount)
	// Item rows are untouched by the override.
	assert.Equal(t, 2, updated.Items[0].Quantity)
	assert.Equal(t, 5000.0, updated.Items[0].UnitPrice)

	// A later item edit recomputes from items and discards the override.
	updated, err = engine.UpdateItemQuantity(order.ID, updated.Items[0].ID, -1, principal(manager))
	require.NoError(t, err)
	assert.Equal(t, 5000.0, updated.TotalAmount)
}

func TestSetCompletionDate(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)

	order, err := engine.Create(CreateInput{
		Items: []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	_, err = engine.SetCompletionDate(order.ID, date, principal(manager))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)

	updated, err := engine.SetCompletionDate(order.ID, date, principal(assembler))
	require.NoError(t, err)
	require.NotNil(t, updated.EstimatedCompletionDate)
	assert.True(t, updated.EstimatedCompletionDate.Equal(date))
}

func TestAddComment(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	admin := seedUser(t, db, "admin", models.RoleAdmin)

	order, err := engine.Create(CreateInput{
		CustomerName: "Ivan",
		Items:        []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
		Comment:      "first",
	})
	require.NoError(t, err)

	_, err = engine.AddComment(order.ID, principal(admin), "  ", false, "admin")
	assert.ErrorIs(t, err, ErrInvalidItem)

	updated, err := engine.AddComment(order.ID, principal(admin), "internal note", true, "admin")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "first", updated.Comments[0].Text)
	assert.Equal(t, "internal note", updated.Comments[1].Text)
	assert.True(t, updated.Comments[1].IsInternal)

	// Comments remain appendable after the order becomes terminal.
	_, err = engine.UpdateStatus(order.ID, models.StatusCompleted, principal(admin))
	require.NoError(t, err)

	updated, err = engine.AddComment(order.ID, principal(admin), "picked up", false, "Ivan")
	require.NoError(t, err)
	assert.Len(t, updated.Comments, 3)
}

func TestAddCommentVisibility(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	client := seedUser(t, db, "client", models.RoleClient)
	otherClient := seedUser(t, db, "other-client", models.RoleClient)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)
	stranger := seedUser(t, db, "stranger", models.RoleAssembler)

	clientID := client.ID
	order, err := engine.Create(CreateInput{
		CustomerID:   &clientID,
		CustomerName: "client",
		Items:        []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.AddComment(order.ID, principal(manager), "manager-only note", true, "manager")
	require.NoError(t, err)

	// Only participants may comment.
	_, err = engine.AddComment(order.ID, principal(otherClient), "not my order", false, "other")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = engine.AddComment(order.ID, principal(stranger), "not assigned", false, "stranger")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)
	_, err = engine.AddComment(order.ID, principal(assembler), "measured on site", false, "assembler")
	assert.NoError(t, err)

	// The customer may comment, and the returned thread never carries
	// internal notes.
	updated, err := engine.AddComment(order.ID, principal(client), "when do you install?", false, "client")
	require.NoError(t, err)
	for _, comment := range updated.Comments {
		assert.False(t, comment.IsInternal)
	}
	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "when do you install?", updated.Comments[1].Text)

	full, err := engine.Get(order.ID, principal(manager))
	require.NoError(t, err)
	assert.Len(t, full.Comments, 3)
}

func TestGetVisibility(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	manager := seedUser(t, db, "manager", models.RoleManager)
	client := seedUser(t, db, "client", models.RoleClient)
	otherClient := seedUser(t, db, "other-client", models.RoleClient)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)
	stranger := seedUser(t, db, "stranger", models.RoleAssembler)

	clientID := client.ID
	order, err := engine.Create(CreateInput{
		CustomerID:   &clientID,
		CustomerName: "client",
		Items:        []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.AddComment(order.ID, principal(manager), "negotiate the price down", true, "manager")
	require.NoError(t, err)
	_, err = engine.AddComment(order.ID, principal(manager), "we will call you", false, "manager")
	require.NoError(t, err)

	_, err = engine.AssignAssembler(order.ID, assembler.ID, principal(manager))
	require.NoError(t, err)

	// Clients see their own order, without internal notes.
	visible, err := engine.Get(order.ID, principal(client))
	require.NoError(t, err)
	require.Len(t, visible.Comments, 1)
	assert.Equal(t, "we will call you", visible.Comments[0].Text)

	full, err := engine.Get(order.ID, principal(manager))
	require.NoError(t, err)
	assert.Len(t, full.Comments, 2)

	_, err = engine.Get(order.ID, principal(otherClient))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.Get(order.ID, principal(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = engine.Get(order.ID, principal(assembler))
	assert.NoError(t, err)

	_, err = engine.Get(uuid.New(), principal(manager))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListScoping(t *testing.T) {
	engine, db := setupEngine(t)
	window := seedProduct(t, db, "window", 1000)
	admin := seedUser(t, db, "admin", models.RoleAdmin)
	client := seedUser(t, db, "client", models.RoleClient)
	assembler := seedUser(t, db, "assembler", models.RoleAssembler)

	clientID := client.ID
	mine, err := engine.Create(CreateInput{
		CustomerID: &clientID,
		Items:      []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.Create(CreateInput{
		CustomerName: "guest",
		Items:        []CreateItemInput{{ProductID: window.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = engine.AssignAssembler(mine.ID, assembler.ID, principal(admin))
	require.NoError(t, err)

	all, err := engine.List(principal(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assigned, err := engine.List(principal(assembler))
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, mine.ID, assigned[0].ID)

	own, err := engine.List(principal(client))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	_, err = engine.List(models.Principal{ID: uuid.New(), Role: models.RoleGuest})
	assert.ErrorIs(t, err, ErrForbidden)
}
