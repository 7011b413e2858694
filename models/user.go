package models

// User is the profile resolved by the auth collaborator. Token issuance and
// signup live outside this service; we only read users here.
type User struct {
	Model
	Fullname  string `json:"fullname" binding:"required,min=2"`
	Email     string `json:"email" gorm:"unique;not null" binding:"required,email"`
	Telephone string `json:"telephone" gorm:"default:null"`
	PanNumber string `json:"pan_number,omitempty" gorm:"size:32"`
	IsBlocked bool   `json:"is_blocked" gorm:"default:false"`
	IsActive  bool   `json:"-" gorm:"default:true"`
}

// Blacklist holds revoked access tokens.
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"index"`
}
