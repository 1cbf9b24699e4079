package models

// User represents an account in any of the storefront roles.
type User struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"type:varchar(16);index" json:"role"`
	AvatarURL    string `json:"avatar_url"`
}
