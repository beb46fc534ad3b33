package models

import (
	"time"
)

// User role constants
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// User corresponds to the usuarios table.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Email        string    `gorm:"type:varchar(100);not null;unique" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:rol;type:varchar(20);not null;default:'operador'" json:"rol"`
	// No column default: a default on a bool makes GORM skip false on insert,
	// so a deactivated row would silently come back active.
	Active    bool      `gorm:"column:activo;not null" json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the original schema name so historical data stays readable.
func (User) TableName() string { return "usuarios" }

// Floor corresponds to the pisos table. Floors are never physically deleted;
// "delete" flips Active to false so historical entries keep a valid reference.
type Floor struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:nombre;type:varchar(50);not null;unique" json:"nombre"`
	Description string    `gorm:"column:descripcion;type:varchar(500)" json:"descripcion"`
	Active      bool      `gorm:"column:activo;not null" json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Floor) TableName() string { return "pisos" }

// VisitorEntry corresponds to the visitantes table: one count of visitors
// recorded for a floor at a date and time. Date is a plain YYYY-MM-DD string
// (no time zone) so range filters and MIN/MAX compare lexicographically,
// matching the DATEONLY column of the original schema. DayOfWeek is always
// derived from Date, never accepted from the caller.
type VisitorEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FloorID   uint      `gorm:"column:piso_id;not null;index:idx_visitantes_piso_fecha" json:"piso_id"`
	Count     int       `gorm:"column:cantidad;not null;default:1" json:"cantidad"`
	Date      string    `gorm:"column:fecha;type:varchar(10);not null;index:idx_visitantes_piso_fecha;index:idx_visitantes_fecha" json:"fecha"`
	Time      string    `gorm:"column:hora;type:varchar(5);not null" json:"hora"`
	DayOfWeek string    `gorm:"column:dia_semana;type:varchar(20);not null" json:"dia_semana"`
	UserID    uint      `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	Notes     string    `gorm:"column:observaciones;type:text" json:"observaciones"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Floor *Floor `gorm:"foreignKey:FloorID" json:"piso,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"usuario,omitempty"`
}

func (VisitorEntry) TableName() string { return "visitantes" }

// Count bounds for a single visitor entry, inclusive.
const (
	MinEntryCount = 1
	MaxEntryCount = 1000
)

// Setting corresponds to the configuracion table, a key/value store for
// institution metadata (name, responsible area, system version, ...).
type Setting struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key         string    `gorm:"column:clave;type:varchar(50);not null;unique" json:"clave"`
	Value       string    `gorm:"column:valor;type:text;not null" json:"valor"`
	Description string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Setting) TableName() string { return "configuracion" }

// SystemSettingKeys are the configuracion keys exposed by the system config endpoint.
var SystemSettingKeys = []string{
	"nombre_institucion",
	"area_responsable",
	"version_sistema",
	"backup_automatico",
}
