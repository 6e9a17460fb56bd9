//go:build container
// +build container

package migration

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"Menu-Builder-Backend/pkg/extraction"
	"Menu-Builder-Backend/pkg/menu"
	"Menu-Builder-Backend/pkg/restaurant"
	"Menu-Builder-Backend/pkg/subscription"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "menu",
			"POSTGRES_PASSWORD": "menu",
			"POSTGRES_DB":       "menu",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s user=menu password=menu dbname=menu port=%s sslmode=disable TimeZone=UTC", host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB) *entities.Restaurant {
	t.Helper()

	r := &entities.Restaurant{ID: uuid.New(), OwnerID: uuid.New(), Name: "Luigi's", DefaultCurrency: "USD"}
	require.NoError(t, restaurant.NewRestaurantRepository(db).CreateRestaurant(context.Background(), r))
	return r
}

func TestLedgerOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	ledger := extraction.NewExtractionRepository(db)
	r := seedRestaurant(t, db)

	record := &entities.MenuExtraction{ID: uuid.New(), RestaurantID: r.ID, FileURL: "https://cdn.example.com/a.png"}
	require.NoError(t, ledger.CreateExtraction(ctx, record))

	require.NoError(t, ledger.CompleteExtraction(ctx, record.ID.String(), datatypes.JSON(`{"categories":[]}`)))
	assert.ErrorIs(t, ledger.FailExtraction(ctx, record.ID.String(), "late"), domain.ErrExtractionFinalized)
	assert.ErrorIs(t, ledger.FailExtraction(ctx, uuid.NewString(), "missing"), domain.ErrExtractionNotFound)

	got, err := ledger.GetExtractionByID(ctx, record.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.ExtractionStatusCompleted, got.Status)
	assert.Nil(t, got.ErrorMessage)
	assert.JSONEq(t, `{"categories":[]}`, string(got.ExtractedData))

	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.CreateExtraction(ctx, &entities.MenuExtraction{ID: uuid.New(), RestaurantID: r.ID, FileURL: "x"}))
	}
	page, total, err := ledger.GetExtractionsByRestaurant(ctx, r.ID.String(), 2, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, page, 1)
}

func TestMenuTransactionOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := menu.NewMenuRepository(db)
	r := seedRestaurant(t, db)

	extracted := domain.ExtractedMenu{Categories: []domain.ExtractedCategory{
		{Name: "Appetizers", Items: []domain.ExtractedItem{{Name: "Caesar Salad", Price: 12.99}, {Name: "Soup", Price: 4}}},
	}}

	boom := errors.New("abort")
	err := repo.Transaction(ctx, func(tx menu.MenuRepository) error {
		require.NoError(t, tx.LockTenant(ctx, r.OwnerID.String()))
		if _, err := menu.Materialize(ctx, tx, r, extracted, 0, 0); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := repo.CountItems(ctx, r.ID.String())
	require.NoError(t, err)
	assert.Zero(t, count)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Transaction(ctx, func(tx menu.MenuRepository) error {
				if err := tx.LockTenant(ctx, r.OwnerID.String()); err != nil {
					return err
				}
				categories, err := tx.CountCategories(ctx, r.ID.String())
				if err != nil {
					return err
				}
				items, err := tx.CountItems(ctx, r.ID.String())
				if err != nil {
					return err
				}
				_, err = menu.Materialize(ctx, tx, r, extracted, int(categories), int(items))
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := repo.GetItemsByRestaurant(ctx, r.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 8)
	for i, item := range items {
		assert.Equal(t, i, item.DisplayOrder)
		assert.True(t, item.IsAvailable)
	}
	assert.Equal(t, 12.99, items[0].Price)
}

func TestRestaurantQuotaOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	svc := restaurant.NewRestaurantService(
		restaurant.NewRestaurantRepository(db),
		subscription.NewSubscriptionService(subscription.NewSubscriptionRepository(db), nil),
	)
	ownerID := uuid.NewString()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.CreateRestaurant(ctx, domain.CreateRestaurantRequest{Name: "Branch"}, ownerID)
		}()
	}
	wg.Wait()

	mine, err := svc.GetMyRestaurants(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
