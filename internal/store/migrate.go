package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator applies the SQL migrations under db/migrations.
type Migrator struct {
	dsn string
}

func NewMigrator(dsn string) *Migrator { return &Migrator{dsn: dsn} }

func sourceURL() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("file://%s", filepath.Join(wd, "db", "migrations")), nil
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	src, err := sourceURL()
	if err != nil {
		return nil, err
	}
	return migrate.New(src, m.dsn)
}

func (m *Migrator) Up() error {
	inst, err := m.instance()
	if err != nil {
		return err
	}
	if err := inst.Up(); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return err
	}
	return nil
}

// Down rolls back a single migration step.
func (m *Migrator) Down() error {
	inst, err := m.instance()
	if err != nil {
		return err
	}
	if err := inst.Steps(-1); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return err
	}
	return nil
}
