package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultInputFiles are the yearly floorsheet exports read when INPUT_FILES
// is not set.
var DefaultInputFiles = []string{
	"jsonChukulFloorsheetData/2022.txt",
	"jsonChukulFloorsheetData/2023.txt",
	"jsonChukulFloorsheetData/2024.txt",
	"jsonChukulFloorsheetData/2025.txt",
}

// DefaultOutputFile is where the buyer/seller report is written.
const DefaultOutputFile = "buyerSellerData.csv"

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	INPUT_FILES=data/2024.txt,data/2025.txt
//	OUTPUT_FILE=buyerSellerData.csv
//	OUTPUT_XLSX=
//	LOAD_PARALLEL=1
//	STORE_ENABLED=false
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=floorsheet
//	POSTGRES_SSLMODE=disable
type Config struct {
	Pipeline PipelineConfig // Report pipeline inputs and outputs
	Store    StoreConfig    // Whether runs are persisted to Postgres
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
}

// PipelineConfig controls the batch report run.
//
// Fields:
//   - InputFiles: ordered list of tab-separated floorsheet files.
//   - OutputFile: path of the tab-separated report.
//   - OutputXLSX: optional path of an Excel copy of the report ("" disables it).
//   - Parallel: how many input files may be read at once (1 = sequential).
type PipelineConfig struct {
	InputFiles []string
	OutputFile string
	OutputXLSX string
	Parallel   int
}

// StoreConfig toggles persistence of report runs.
type StoreConfig struct {
	Enabled bool
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for PostgreSQL. URL is the
// computed DSN used by database/sql.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated by
// LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// CLI flags are applied afterwards by the command layer, which is also
// responsible for rejecting the result with Missing(); LoadConfig never
// fails on its own.
func LoadConfig() {
	viper.SetDefault("INPUT_FILES", strings.Join(DefaultInputFiles, ","))
	viper.SetDefault("OUTPUT_FILE", DefaultOutputFile)
	viper.SetDefault("OUTPUT_XLSX", "")
	viper.SetDefault("LOAD_PARALLEL", 1)
	viper.SetDefault("STORE_ENABLED", false)

	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "floorsheet")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Pipeline: PipelineConfig{
			InputFiles: SplitList(viper.GetString("INPUT_FILES")),
			OutputFile: strings.TrimSpace(viper.GetString("OUTPUT_FILE")),
			OutputXLSX: strings.TrimSpace(viper.GetString("OUTPUT_XLSX")),
			Parallel:   viper.GetInt("LOAD_PARALLEL"),
		},
		Store: StoreConfig{
			Enabled: viper.GetBool("STORE_ENABLED"),
		},
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}
	if AppConfig.Pipeline.Parallel < 1 {
		AppConfig.Pipeline.Parallel = 1
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()
}

// DSN builds the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Missing lists the configuration keys that are required but empty.
// Postgres settings are only required when the report store is enabled.
func (c Config) Missing() []string {
	var missing []string

	if len(c.Pipeline.InputFiles) == 0 {
		missing = append(missing, "INPUT_FILES")
	}
	if c.Pipeline.OutputFile == "" {
		missing = append(missing, "OUTPUT_FILE")
	}
	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if !c.Store.Enabled {
		return missing
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}

// SplitList parses a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
