package services

import (
	"os"
	"sync"
	"testing"

	"warehouse-app/database"
	"warehouse-app/idgen"
	"warehouse-app/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	idgen.Init()
	os.Exit(m.Run())
}

// setupTestDB opens a fresh in-memory database per test. The pool is
// pinned to a single connection because every sqlite :memory: connection
// is its own empty database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	Name string
	Data map[string]interface{}
}

func (p *capturePublisher) Publish(event string, data map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{Name: event, Data: data})
}

func (p *capturePublisher) named(event string) []capturedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []capturedEvent
	for _, e := range p.events {
		if e.Name == event {
			out = append(out, e)
		}
	}
	return out
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string, quantity, minimum int, price float64) *models.Product {
	t.Helper()
	product := models.Product{
		SKU:               sku,
		Name:              "Product " + sku,
		Quantity:          quantity,
		MinimumStockLevel: minimum,
		UnitPrice:         price,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createTestCustomer(t *testing.T, db *gorm.DB, code string) *models.Customer {
	t.Helper()
	customer := models.Customer{CustomerCode: code, CustomerName: "Customer " + code}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

func createTestSupplier(t *testing.T, db *gorm.DB, code string, active bool) *models.Supplier {
	t.Helper()
	supplier := models.Supplier{SupplierCode: code, SupplierName: "Supplier " + code, IsActive: active}
	require.NoError(t, db.Create(&supplier).Error)
	return &supplier
}

func createTestLocation(t *testing.T, db *gorm.DB, code string, capacity *int) *models.Location {
	t.Helper()
	location := models.Location{
		LocationCode: code,
		Zone:         code, Rack: "R1", Shelf: "S1", Bin: "B1",
		Capacity: capacity,
		IsActive: true,
	}
	require.NoError(t, db.Create(&location).Error)
	return &location
}

func createTestStaff(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		Name:     "Staff " + email,
		Email:    email,
		Password: "irrelevant",
		Role:     models.RoleStaff,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func intPtr(v int) *int { return &v }

func noopLogger() *zap.Logger { return zap.NewNop() }
