package model

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Description is the base entity embedded by every dc3 record. Rows are
// never removed by gorm deletes: Deleted is flipped to 1 and reads skip them.
type Description struct {
	ID          int64                 `json:"id,omitempty" gorm:"primaryKey;autoIncrement"`
	Description string                `json:"description,omitempty" gorm:"type:varchar(380)"`
	CreateTime  time.Time             `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime  time.Time             `json:"updateTime" gorm:"autoUpdateTime"`
	Deleted     soft_delete.DeletedAt `json:"deleted,omitempty" gorm:"softDelete:flag;not null;default:0"`
}

// IsDeleted reports whether the record carries the soft delete flag.
func (d Description) IsDeleted() bool {
	return d.Deleted == 1
}

// ResetBookkeeping clears the fields the database owns, keeping the id and
// the free-text description.
func (d *Description) ResetBookkeeping() {
	*d = Description{ID: d.ID, Description: d.Description}
}
