package config

// Provider kinds.
const (
	ProviderFixture = "fixture"
	ProviderCSV     = "csv"
	ProviderHTTP    = "http"
)

// Store kinds.
const (
	StoreFS     = "fs"
	StoreSQL    = "sql"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// SQL drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const serviceName = "nba-playoff-efficiency"
