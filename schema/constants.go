package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run history.
	DatabaseBackend string

	// IntensityLevel is the qualitative band of an intensity value.
	IntensityLevel string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All intensity levels, lowest first.
const (
	VeryLowLevel  IntensityLevel = "very low"
	LowLevel      IntensityLevel = "low"
	ModerateLevel IntensityLevel = "moderate"
	HighLevel     IntensityLevel = "high"
	VeryHighLevel IntensityLevel = "very high"
)

// Upstream API constants.
const (
	DefaultBaseURL = "https://api.carbonintensity.org.uk"

	// DailyBlockHours is the aggregation block requested from the stats endpoint.
	DailyBlockHours = 24
)

// AllIntensityLevels lists the levels in ascending order.
var AllIntensityLevels = []IntensityLevel{VeryLowLevel, LowLevel, ModerateLevel, HighLevel, VeryHighLevel}

// RenewableFuels are the fuels counted towards the renewable share.
var RenewableFuels = map[string]struct{}{
	"biomass": {},
	"hydro":   {},
	"solar":   {},
	"wind":    {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
