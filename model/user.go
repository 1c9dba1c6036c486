// Package model defines database models
package model

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	// Set by the store on insert, never updated afterwards
	CreatedAt time.Time `json:"createdAt"`

	ProfileImages []ProfileImage `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profileImages"`
}
