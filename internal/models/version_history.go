package models

import "time"

type VersionHistory struct {
	ID         int64     `json:"id" db:"id"`
	Version    string    `json:"version" db:"version"`
	ReleasedAt time.Time `json:"released_at" db:"released_at"`
	Changes    string    `json:"changes" db:"changes"`
	Author     *string   `json:"author" db:"author"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
