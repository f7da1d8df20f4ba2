package database

import "time"

type UserAttrs struct {
	Email        string
	PasswordHash string
	DisplayName  string
}

type TagAttrs struct {
	Slug string
	Name string
}

type PostAttrs struct {
	Slug            string
	Title           string
	Excerpt         string
	Content         string
	FeaturedImage   string
	Status          string
	MetaTitle       string
	MetaDescription string
	PublishedAt     *time.Time
	Tags            []TagAttrs
}
