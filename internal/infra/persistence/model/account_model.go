package model

import "time"

// AccountModel mirrors the 'accounts' table. The id is a bigserial assigned
// by the database on insert; ids are never reused because deactivation is a
// soft delete that keeps the row. The unique index on email is the
// authoritative guard against concurrent duplicate creation.
type AccountModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Password  string `gorm:"type:varchar(72);not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
