package database

import (
	"time"

	"gorm.io/gorm"
)

const PostStatusDraft = "draft"
const PostStatusPublished = "published"

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	UUID         string `gorm:"type:uuid;not null;uniqueIndex"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	Posts        []Post         `gorm:"foreignKey:AuthorID"`
}

type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	UUID     string `gorm:"type:uuid;not null;uniqueIndex"`
	AuthorID uint64 `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	// Slug is the public lookup key; uniqueness is enforced here, not in
	// application code. Posts are removed for real on delete so the unique
	// index never pins a slug to a dead row.
	Slug            string `gorm:"size:255;not null;uniqueIndex"`
	Title           string `gorm:"size:255;not null"`
	Excerpt         string `gorm:"type:text"`
	Content         string `gorm:"type:text"`
	FeaturedImage   string `gorm:"size:512"`
	Status          string `gorm:"size:16;not null;default:draft;index"`
	MetaTitle       string `gorm:"size:255"`
	MetaDescription string `gorm:"size:512"`
	PublishedAt     *time.Time `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Tags            []Tag `gorm:"many2many:post_tags"`
}

type Tag struct {
	ID        uint64 `gorm:"primaryKey"`
	UUID      string `gorm:"type:uuid;not null;uniqueIndex"`
	Slug      string `gorm:"size:255;not null;uniqueIndex"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type PostTag struct {
	PostID uint64 `gorm:"primaryKey"`
	TagID  uint64 `gorm:"primaryKey"`
}

func (p Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

func (p Post) IsDraft() bool {
	return p.Status == PostStatusDraft
}

// SchemaModels lists every model in migration order.
func SchemaModels() []any {
	return []any{
		&User{},
		&Post{},
		&Tag{},
		&PostTag{},
	}
}
