package models

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationContractExpiring    NotificationType = "contract_expiring"
	NotificationRegistrationPending NotificationType = "registration_pending"
	NotificationAccountApproved     NotificationType = "account_approved"
	NotificationAccountRejected     NotificationType = "account_rejected"
	NotificationNotice              NotificationType = "notice"
)

// Notification represents a message delivered to one user
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	Username  string           `json:"username" db:"username"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	Link      *string          `json:"link" db:"link"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
