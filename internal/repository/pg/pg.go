package pg

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	migrationsTable = "schema_migrations"
	schemaName      = "public"
	migrationsPath  = "./migrations"

	maxAttempts = 3
)

type Repository struct {
	databaseURI string
	db          *sql.DB
	lg          *zap.SugaredLogger
	classifier  *PostgresErrorClassifier

	workerPool   *WorkerPool
	stopPollChan chan struct{}

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

func New(databaseURI string, lg *zap.SugaredLogger) (*Repository, error) {
	pool, err := pgxpool.New(context.Background(), databaseURI)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: migrationsTable,
		SchemaName:      schemaName,
	})
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, err
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	return &Repository{
		databaseURI:    databaseURI,
		db:             db,
		lg:             lg,
		classifier:     NewPostgresErrorClassifier(),
		workerPool:     NewWorkerPool(),
		stopPollChan:   make(chan struct{}),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}, nil
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

func (r *Repository) Shutdown() error {
	return r.db.Close()
}

// executeWithRetryConnection повторяет операцию при transient-ошибках
// соединения, классифицированных как Retriable.
func (r *Repository) executeWithRetryConnection(fn func(db *sql.DB) error) error {
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn(r.db)
		if err == nil {
			return nil
		}

		if r.classifier.Classify(err) == NonRetriable {
			return err
		}

		time.Sleep(getAttemptDelay(attempt))
	}

	return err
}

func getAttemptDelay(attempt int) time.Duration {
	switch attempt {
	case 0:
		return 1 * time.Second
	case 1:
		return 3 * time.Second
	default:
		return 5 * time.Second
	}
}
