package postgres

import "time"

// UserModel é o model GORM para usuários
type UserModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(320);uniqueIndex;not null"`
	HashedPassword string    `gorm:"type:varchar(1024);not null"`
	IsActive       bool      `gorm:"not null"`
	IsSuperuser    bool      `gorm:"not null"`
	IsVerified     bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PostModel é o model GORM para posts
type PostModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    *string   `gorm:"type:uuid;index"` // NULL sem autenticação
	Caption   string    `gorm:"type:text;not null"`
	URL       string    `gorm:"type:varchar(2048);not null"`
	FileType  string    `gorm:"type:varchar(16);not null"`
	FileName  string    `gorm:"type:varchar(1024);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null;index"`
}

func (PostModel) TableName() string {
	return "posts"
}
