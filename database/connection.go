package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/matthewbroadbent/blog-norivane/env"
)

const DriverName = "postgres"

type Connection struct {
	driverName string
	driver     *gorm.DB
}

func MakeConnection(e *env.Environment) (*Connection, error) {
	dbEnv := e.DB

	driver, err := gorm.Open(postgres.Open(dbEnv.GetDSN()), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	return &Connection{
		driver:     driver,
		driverName: dbEnv.DriverName,
	}, nil
}

// NewConnectionFromGorm wraps an already-open gorm handle. Used by tests that
// run against sqlite.
func NewConnectionFromGorm(driver *gorm.DB) *Connection {
	return &Connection{
		driver:     driver,
		driverName: driver.Name(),
	}
}

func (c *Connection) Close() bool {
	sqlDB, err := c.driver.DB()
	if err != nil {
		slog.Error("There was an error closing the db: " + err.Error())

		return false
	}

	if err = sqlDB.Close(); err != nil {
		slog.Error("There was an error closing the db: " + err.Error())

		return false
	}

	return true
}

func (c *Connection) Ping() error {
	sqlDB, err := c.driver.DB()
	if err != nil {
		return fmt.Errorf("retrieving db driver: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("pinging db driver: %w", err)
	}

	return nil
}

func (c *Connection) Sql() *gorm.DB {
	return c.driver
}

func (c *Connection) Transaction(callback func(db *gorm.DB) error) error {
	return c.driver.Transaction(callback)
}
