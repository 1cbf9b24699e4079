package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/oknastroy/internal/models"
)

func seedOrder(t *testing.T, store *Store, quantity int) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerName:     "store test",
		Status:           models.StatusPending,
		AcceptanceStatus: models.AcceptancePending,
		TotalAmount:      float64(quantity) * 100,
		Items: []models.OrderItem{
			{ProductID: uuid.New(), Name: "window", UnitPrice: 100, Quantity: quantity},
		},
	}
	require.NoError(t, store.Create(order))
	return order
}

func TestStoreGetNotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))

	_, err := store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSaveDetectsConcurrentWrite(t *testing.T) {
	store := NewStore(setupTestDB(t))
	order := seedOrder(t, store, 2)

	first, err := store.Get(order.ID)
	require.NoError(t, err)
	second, err := store.Get(order.ID)
	require.NoError(t, err)

	first.Status = models.StatusProcessing
	require.NoError(t, store.Save(first))

	// The second copy is now stale; its write must not go through.
	second.Status = models.StatusCancelled
	assert.ErrorIs(t, store.Save(second), ErrConflict)

	reloaded, err := store.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, reloaded.Status)
}

func TestStoreSavePrunesRemovedItems(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	order := seedOrder(t, store, 2)

	loaded, err := store.Get(order.ID)
	require.NoError(t, err)
	loaded.Items = nil
	loaded.TotalAmount = 0
	require.NoError(t, store.Save(loaded))

	var rows int64
	require.NoError(t, db.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestStoreAppendCommentNeverRewrites(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	order := seedOrder(t, store, 1)

	first := &models.OrderComment{Author: "manager", Text: "call the client"}
	require.NoError(t, store.AppendComment(order.ID, first))

	second := &models.OrderComment{Author: "assembler", Text: "parts arrived", IsInternal: true}
	require.NoError(t, store.AppendComment(order.ID, second))

	loaded, err := store.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 2)
	assert.Equal(t, "call the client", loaded.Comments[0].Text)
	assert.Equal(t, "parts arrived", loaded.Comments[1].Text)
	assert.NotEqual(t, loaded.Comments[0].ID, loaded.Comments[1].ID)
}

func TestStoreListNewestFirst(t *testing.T) {
	store := NewStore(setupTestDB(t))
	older := seedOrder(t, store, 1)
	newer := seedOrder(t, store, 1)

	admin := models.Principal{ID: uuid.New(), Role: models.RoleAdmin}
	list, err := store.List(admin)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestStoreAssemblerLookup(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	assembler := models.User{Name: "fitter", Email: "fitter@example.com", Role: models.RoleAssembler}
	require.NoError(t, db.Create(&assembler).Error)
	client := models.User{Name: "buyer", Email: "buyer@example.com", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	found, err := store.AssemblerByID(assembler.ID)
	require.NoError(t, err)
	assert.Equal(t, assembler.ID, found.ID)

	_, err = store.AssemblerByID(client.ID)
	assert.ErrorIs(t, err, ErrInvalidAssignee)

	_, err = store.AssemblerByID(uuid.New())
	assert.ErrorIs(t, err, ErrInvalidAssignee)
}
