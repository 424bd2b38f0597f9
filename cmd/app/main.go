package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/gates"
	"fulfillment/internal/adapters/out/postgres/crrepo"
	"fulfillment/internal/adapters/out/postgres/journalrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/versionrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		intEnv(configs.JournalBufferSize, 256),
		durationEnv(configs.SlaReescalateEvery, time.Hour),
		logger,
	)

	app.StartJournal()
	defer app.StopJournal()

	sweepCron := configs.SlaSweepCron
	if sweepCron == "" {
		sweepCron = "* * * * *"
	}

	jobManager := jobs.NewJobManager(
		app.CreateEscalateStalledOrdersCommandHandler(),
		sweepCron,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		SlaSweepCron:       goDotEnvVariable("SLA_SWEEP_CRON"),
		SlaReescalateEvery: goDotEnvVariable("SLA_REESCALATE_EVERY"),
		JournalBufferSize:  goDotEnvVariable("JOURNAL_BUFFER_SIZE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnv(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %q as an integer: %v", raw, err)
	}
	return value
}

func durationEnv(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing %q as a duration: %v", raw, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the ledger maps to a version conflict.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&versionrepo.VersionDTO{},
		&crrepo.ChangeRequestDTO{},
		&journalrepo.EventDTO{},
		&gates.PaymentStatusDTO{},
		&gates.ReconciliationStatusDTO{},
		&gates.DebtRecordDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateCreateChangeRequestCommandHandler(),
		app.CreateDecideChangeRequestCommandHandler(),
		app.CreateRollbackVersionCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrderGatesQueryHandler(),
		app.CreateGetVersionHistoryQueryHandler(),
		app.CreateGetChangeRequestsQueryHandler(),
		app.CreateGetJournalQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
