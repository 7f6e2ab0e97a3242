// Package pgtest starts a disposable PostgreSQL container with the service
// schema applied. It is imported by integration test suites only.
package pgtest

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"manufacturing/internal/adapters/out/postgres/migrations"
)

// Tables lists every table of the schema, children first.
var Tables = []string{
	"supply_order_items",
	"supply_orders",
	"control_orders",
	"production_orders",
	"warehouse_order_items",
	"warehouse_orders",
	"customer_order_items",
	"customer_orders",
}

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	URL       string
}

// Start runs postgres:15-alpine, applies the migrations and opens gorm.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	d := &Database{Container: container}
	if d.URL, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	if err = migrations.Up(d.URL, zap.NewNop()); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	if d.DB, err = gorm.Open(gormpostgres.Open(d.URL), &gorm.Config{}); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	return d, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	for _, table := range Tables {
		if err := d.DB.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
