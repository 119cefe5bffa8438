package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"fern-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"60"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"60"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST,PUT,DELETE"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// PostgreSQL
	DatabaseDriver              string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                string        `env:"DB_HOST" env-default:""`
	DatabasePort                string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName            string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword            string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                string        `env:"DB_NAME" env-default:"fern"`
	DatabaseSSLMode             string        `env:"DB_SQL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns        int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns        int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime     time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion    int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce      int           `env:"DB_MIGRATION_FORCE" env-default:"0"`

	// Import pipeline
	ImportMaxErrorEntries int    `env:"IMPORT_MAX_ERROR_ENTRIES" env-default:"100"`
	ImportSheetName       string `env:"IMPORT_SHEET_NAME" env-default:""`
	ImportHeaderRowIndex  int    `env:"IMPORT_HEADER_ROW_INDEX" env-default:"0"`
	ImportMaxUploadBytes  int64  `env:"IMPORT_MAX_UPLOAD_BYTES" env-default:"52428800"` // 50MB

	// Kafka Producer (import lifecycle events)
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"true"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"sap-import-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`
}
