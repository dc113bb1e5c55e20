package models

import (
	"time"

	"github.com/gocql/gocql"
)

// AuditLog traces a manager action.
type AuditLog struct {
	ID         gocql.UUID `json:"id"`
	UserID     string     `json:"user_id"`
	Action     string     `json:"action"`
	Resource   string     `json:"resource"`
	ResourceID string     `json:"resource_id,omitempty"`
	IPAddress  string     `json:"ip_address"`
	UserAgent  string     `json:"user_agent"`
	Success    bool       `json:"success"`
	ErrorMsg   string     `json:"error_msg,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

const (
	ActionCategoryCreate = "category.create"
	ActionCategoryUpdate = "category.update"
	ActionCategoryDelete = "category.delete"
	ActionProductCreate  = "product.create"
	ActionProductUpdate  = "product.update"
	ActionProductDelete  = "product.delete"
	ActionProductImage   = "product.image"
	ActionProductStock   = "product.stock"
	ActionOrderMarkPaid  = "order.mark_paid"

	ResourceCategory = "category"
	ResourceProduct  = "product"
	ResourceOrder    = "order"
)
