package locales

// MessagesEnUS holds the English (US) translations.
var MessagesEnUS = map[string]string{
	// Common
	"common.success":  "Success",
	"common.error":    "Operation failed",
	"unauthorized":    "Unauthorized",
	"forbidden":       "You do not have permission to perform this action",
	"not_found":       "Resource not found",
	"invalid_param":   "Invalid parameter",
	"internal_error":  "Internal server error",
	"database_error":  "Database error",
	"invalid_json":    "Invalid request body",
	"validation_fail": "Validation failed",

	// Auth
	"auth.login_success":       "Login successful",
	"auth.invalid_credentials": "Invalid credentials",
	"auth.token_valid":         "Token is valid",
	"auth.user_created":        "User created successfully",
	"auth.user_not_found":      "User not found",
	"auth.profile_updated":     "Profile updated successfully",
	"auth.password_changed":    "Password updated successfully",
	"auth.wrong_password":      "Current password is incorrect",
	"auth.email_taken":         "Email is already registered",
	"auth.user_deactivated":    "User deactivated successfully",

	// Visitor entries
	"visitor.created":     "Visitor entry created successfully",
	"visitor.updated":     "Visitor entry updated successfully",
	"visitor.deleted":     "Visitor entry deleted successfully",
	"visitor.not_found":   "Visitor entry not found",
	"visitor.future_date": "Visitor entries cannot be recorded for future dates",

	// Floors
	"floor.created":     "Floor created successfully",
	"floor.updated":     "Floor updated successfully",
	"floor.deactivated": "Floor deactivated successfully",
	"floor.reactivated": "Floor reactivated successfully",
	"floor.not_found":   "Floor not found",
	"floor.inactive":    "Floor not found or inactive",
	"floor.name_exists": "A floor with that name already exists",

	// Reports
	"report.invalid_range": "Start date must not be after end date",
	"report.invalid_month": "Month must be between 1 and 12",
	"report.invalid_year":  "Year is outside the allowed range",
	"report.invalid_mode":  "Export mode must be 'completo' or 'resumen'",

	// Config
	"config.updated":        "Configuration updated successfully",
	"config.key_required":   "Key and value are required",
	"config.stats_failed":   "Statistics could not be computed",
	"config.reports_failed": "Report could not be generated",
}
