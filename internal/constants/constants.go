package constants

// Session
const (
	SessionCookieName  = "farmer_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Spreadsheet column headers for hierarchy import/export.
const (
	ColumnWoreda = "Woreda"
	ColumnKebele = "Kebele"
)

// FarmerExportFile is the append-only registration artifact written
// alongside the database on every successful registration.
const FarmerExportFile = "farmer_registrations.xlsx"
