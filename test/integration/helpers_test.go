package integration

import (
	"context"
	"os"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Ramsey-B/fern/internal/repositories/contract"
	"github.com/Ramsey-B/fern/internal/repositories/imports"
	"github.com/Ramsey-B/fern/internal/repositories/payment"
	"github.com/Ramsey-B/fern/internal/repositories/processedrow"
	"github.com/Ramsey-B/fern/internal/repositories/shipment"
	"github.com/Ramsey-B/fern/internal/repositories/trucking"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/distribution"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/importer"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

// getTestDB connects to the migrated test database described by the DB_*
// environment variables, falling back to local defaults.
func getTestDB(t *testing.T) database.DB {
	t.Helper()

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "fern"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	return database.NewDatabaseInstance(db, getTestLogger())
}

type pipeline struct {
	db            database.DB
	logger        ectologger.Logger
	imports       *imports.Repository
	processedRows *processedrow.Repository
	contracts     *contract.Repository
	shipments     *shipment.Repository
	trucking      *trucking.Repository
	payments      *payment.Repository
	engine        *distribution.Engine
	service       *importer.Service
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	db := getTestDB(t)
	logger := getTestLogger()

	contracts := contract.NewRepository(db, logger)
	shipments := shipment.NewRepository(db, logger)
	truckingRepo := trucking.NewRepository(db, logger)
	payments := payment.NewRepository(db, logger)
	importsRepo := imports.NewRepository(db, logger)
	processedRows := processedrow.NewRepository(db, logger)

	engine := distribution.NewEngine(contracts, shipments, truckingRepo, payments, logger)
	service := importer.NewService(
		db, importsRepo, processedRows, engine,
		events.NewEmitter(nil, logger), logger, importer.Config{},
	)

	return &pipeline{
		db:            db,
		logger:        logger,
		imports:       importsRepo,
		processedRows: processedRows,
		contracts:     contracts,
		shipments:     shipments,
		trucking:      truckingRepo,
		payments:      payments,
		engine:        engine,
		service:       service,
	}
}

// buildWorkbook writes a single-sheet xlsx with a header row plus data rows
func buildWorkbook(t *testing.T, headers []any, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := "SAP Export"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	all := append([][]any{headers}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func countRows(t *testing.T, db database.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, query, args...))
	return n
}

// uniqueKey builds a business key that won't collide with earlier test runs
// against the same database
func uniqueKey(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

func strPtr(s string) *string { return &s }
