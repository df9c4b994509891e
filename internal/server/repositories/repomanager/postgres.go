package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/progresspilot/internal/dbx"
	"github.com/dmitrijs2005/progresspilot/internal/server/migrations"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/projects"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresManager struct {
	db *sql.DB
}

func NewPostgresManager(dsn string) (*PostgresManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresManager{db: db}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, m.db, nil, fn)
}

func (m *PostgresManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(m.handle(db))
}

func (m *PostgresManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewPostgresRepository(m.handle(db))
}

func (m *PostgresManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewPostgresRepository(m.handle(db))
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

func (m *PostgresManager) handle(db dbx.DBTX) dbx.DBTX {
	if db == nil {
		return m.db
	}
	return db
}
