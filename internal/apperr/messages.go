package apperr

// Centralized application messages. Error messages here are safe to return to
// clients; anything sensitive stays in the wrapped cause, which is logged only.
const (
	MsgInternalServerError = "An internal server error occurred"
	MsgInvalidInput        = "Invalid input provided"

	MsgInvalidCredentials = "Invalid credentials provided"
	MsgForbidden          = "Access forbidden"
	MsgTokenExpired       = "Authentication token has expired"
	MsgTokenInvalid       = "Invalid authentication token"
	MsgTokenMissing       = "Authentication token is missing"

	MsgClientNotFound   = "Client not found"
	MsgResourceNotFound = "Requested resource not found"

	MsgDatabaseConnectionFailed = "Failed to connect to database"
	MsgDatabaseQueryFailed      = "Database query failed"
	MsgStatementMissing         = "SQL statement is required"

	MsgLoginSuccessful = "Login successful"
	MsgClientCreated   = "Client created successfully"
)
