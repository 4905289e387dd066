package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is one node of the content-driven footer menu tree. Items whose
// Path is "#" or "/" render as plain labels instead of links.
type MenuItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid;index"`
	Title     string     `gorm:"column:title;not null"`
	Path      string     `gorm:"column:path;not null"`
	Position  int        `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
