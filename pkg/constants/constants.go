// Package constants provides shared constants for the yard-economics application.
package constants

// ModelVersion identifies the locked formula set. Any change to a formula or a
// calibrated constant below requires a version bump and new golden values.
const ModelVersion = "v2"

// Annualization constants
const (
	// OperatingDaysPerYear converts per-day shipment volume into annual volume.
	OperatingDaysPerYear = 260

	// HoursPerYear is the paid hours of one full-time employee
	HoursPerYear = 2080

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is used for cost-of-delay windows
	DaysPerYear = 365

	// ProjectionYears is the horizon of the five-year value
	ProjectionYears = 5
)

// Network model calibration
const (
	// NetworkBaselineFacilities is n0; C0 = n0(n0-1)/2 = 45
	NetworkBaselineFacilities = 10

	// DefaultNetworkBeta is the base-case network strength
	DefaultNetworkBeta = 0.004

	// DefaultNetworkTau is the base-case realization constant in facilities
	DefaultNetworkTau = 45.0
)

// Financial constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ReconciliationTolerance is the relative tolerance between the network
	// bonus and the sum of its value streams
	ReconciliationTolerance = 1e-6

	// CostOfDelayWindowDays is the deployment delay priced by the scenario view
	CostOfDelayWindowDays = 90
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
