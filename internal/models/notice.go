package models

import "time"

type Notice struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Pinned    bool      `json:"pinned" db:"pinned"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Files []*StoredFile `json:"files,omitempty" db:"-"`
}

// StoredFile is the metadata of an uploaded attachment; the bytes live in object storage
type StoredFile struct {
	ID           int64     `json:"id" db:"id"`
	OwnerID      int64     `json:"owner_id" db:"owner_id"`
	OriginalName string    `json:"original_name" db:"original_name"`
	ObjectKey    string    `json:"-" db:"object_key"`
	ContentType  string    `json:"content_type" db:"content_type"`
	Size         int64     `json:"size" db:"size"`
	UploadedBy   string    `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
