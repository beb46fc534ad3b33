package locales

// MessagesEsMX holds the Spanish (Mexico) translations. Spanish is the
// default language of the system.
var MessagesEsMX = map[string]string{
	// Common
	"common.success":  "Operación exitosa",
	"common.error":    "Operación fallida",
	"unauthorized":    "No autorizado",
	"forbidden":       "No tienes permisos para realizar esta acción",
	"not_found":       "Recurso no encontrado",
	"invalid_param":   "Parámetro inválido",
	"internal_error":  "Error interno del servidor",
	"database_error":  "Error de base de datos",
	"invalid_json":    "Cuerpo de la petición inválido",
	"validation_fail": "Datos de validación incorrectos",

	// Auth
	"auth.login_success":       "Login exitoso",
	"auth.invalid_credentials": "Credenciales inválidas",
	"auth.token_valid":         "Token válido",
	"auth.user_created":        "Usuario creado exitosamente",
	"auth.user_not_found":      "Usuario no encontrado",
	"auth.profile_updated":     "Perfil actualizado exitosamente",
	"auth.password_changed":    "Contraseña actualizada exitosamente",
	"auth.wrong_password":      "La contraseña actual es incorrecta",
	"auth.email_taken":         "Este email ya está registrado",
	"auth.user_deactivated":    "Usuario desactivado exitosamente",

	// Visitor entries
	"visitor.created":     "Registro de visitante creado exitosamente",
	"visitor.updated":     "Registro actualizado exitosamente",
	"visitor.deleted":     "Registro eliminado exitosamente",
	"visitor.not_found":   "Registro de visitante no encontrado",
	"visitor.future_date": "No se pueden registrar visitantes para fechas futuras",

	// Floors
	"floor.created":     "Piso creado exitosamente",
	"floor.updated":     "Piso actualizado exitosamente",
	"floor.deactivated": "Piso desactivado exitosamente",
	"floor.reactivated": "Piso reactivado exitosamente",
	"floor.not_found":   "Piso no encontrado",
	"floor.inactive":    "Piso no encontrado o inactivo",
	"floor.name_exists": "Ya existe un piso con ese nombre",

	// Reports
	"report.invalid_range": "La fecha de inicio debe ser menor que la fecha de fin",
	"report.invalid_month": "El mes debe estar entre 1 y 12",
	"report.invalid_year":  "El año está fuera del rango permitido",
	"report.invalid_mode":  "El formato debe ser 'completo' o 'resumen'",

	// Config
	"config.updated":        "Configuración actualizada exitosamente",
	"config.key_required":   "Clave y valor son obligatorios",
	"config.stats_failed":   "No se pudieron calcular las estadísticas",
	"config.reports_failed": "No se pudo generar el reporte",
}
