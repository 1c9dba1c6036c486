package model

// ProfileImage rows only ever exist as a full set. An image-bearing profile
// update deletes every row a user owns and recreates one per uploaded file,
// they are never patched individually.
type ProfileImage struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// Durable URL returned by the upload gateway
	Path   string `gorm:"not null" json:"path"`
	UserID uint   `gorm:"index;not null" json:"userId"`
}
