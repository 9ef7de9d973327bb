package database

// Target names the physical database a unit of work runs against: either the
// shared directory database or one tenant's own database, never both.
type Target struct {
	database string
}

// Directory targets the shared directory database.
func Directory() Target {
	return Target{}
}

// Tenant targets the named tenant database.
func Tenant(dbName string) Target {
	return Target{database: dbName}
}

// IsDirectory reports whether the target is the directory database.
func (t Target) IsDirectory() bool {
	return t.database == ""
}

// Database returns the tenant database name; empty for the directory.
func (t Target) Database() string {
	return t.database
}

// String is the log-safe name of the target.
func (t Target) String() string {
	if t.IsDirectory() {
		return "directory"
	}
	return t.database
}
