package models

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleUploader Role = "uploader"
	RoleAdmin    Role = "admin"
)

// ParseRole maps free-form input to a Role, false if unknown.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleViewer:
		return RoleViewer, true
	case RoleUploader:
		return RoleUploader, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)

// MediaTypeFromMIME derives the media type from the MIME prefix. Anything
// that is neither video/* nor image/* collapses to audio; unsupported types
// are rejected before this point.
func MediaTypeFromMIME(mime string) MediaType {
	switch {
	case strings.HasPrefix(mime, "video/"):
		return MediaTypeVideo
	case strings.HasPrefix(mime, "image/"):
		return MediaTypeImage
	default:
		return MediaTypeAudio
	}
}

// NormalizeEmail is applied before every lookup or store of an email so
// differently-cased addresses never produce duplicate rows.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
	Picture   string    `gorm:"size:512" json:"picture,omitempty"`
	Role      Role      `gorm:"size:20;not null;default:'viewer'" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

type Media struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Filename         string    `gorm:"uniqueIndex;size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255" json:"original_filename,omitempty"`
	MediaType        MediaType `gorm:"size:20;not null" json:"media_type"`
	MimeType         string    `gorm:"size:100;not null" json:"mime_type"`
	URL              string    `gorm:"size:512;not null" json:"url"`
	ThumbnailURL     string    `gorm:"size:512" json:"thumbnail_url,omitempty"`
	Title            string    `gorm:"size:255" json:"title,omitempty"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
	Tags             []string  `gorm:"serializer:json" json:"tags"`
	PlaylistTags     []string  `gorm:"serializer:json" json:"playlist_tags"`
	DurationSeconds  *float64  `json:"duration_seconds,omitempty"`
	OwnerID          *uint     `gorm:"index" json:"owner_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Media) TableName() string { return "media" }

type Playlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	OwnerID     *uint     `gorm:"index" json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated by the repository, ordered by position.
	Items []PlaylistItem `gorm:"-" json:"items,omitempty"`
}

func (Playlist) TableName() string { return "playlists" }

// PlaylistItem is the ordered (playlist, media) membership row. The
// composite primary key enforces at most one row per pair.
type PlaylistItem struct {
	PlaylistID uint `gorm:"primaryKey;autoIncrement:false" json:"playlist_id"`
	MediaID    uint `gorm:"primaryKey;autoIncrement:false" json:"media_id"`
	Position   int  `gorm:"not null;default:0" json:"position"`

	// Populated by joins, not stored in the row.
	Media *Media `gorm:"-" json:"media,omitempty"`
}

func (PlaylistItem) TableName() string { return "playlist_items" }
