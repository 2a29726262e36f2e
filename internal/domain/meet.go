package domain

import "time"

// Meet is one swim meet and its credential pair. The access code is handed to
// timers; the admin PIN is held by officials and the relay agent operator.
type Meet struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	AccessCode string    `json:"-" db:"access_code"`
	AdminPIN   string    `json:"-" db:"admin_pin"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
