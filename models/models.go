package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Warehouse is a physical site receiving lines are booked into.
type Warehouse struct {
	bun.BaseModel `bun:"table:warehouses,alias:w"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Code      string    `bun:"code,unique,notnull"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Location is a storage slot within one warehouse.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:l"`

	ID          int64     `bun:"id,pk,autoincrement"`
	WarehouseID int64     `bun:"warehouse_id,notnull"`
	Code        string    `bun:"code,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Item is the item master. Unknown codes arriving on a receiving line
// are created on the fly with name = code.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Code      string    `bun:"code,unique,notnull"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ReceivingHeader is one goods-receiving transaction owning N lines.
type ReceivingHeader struct {
	bun.BaseModel `bun:"table:receiving_headers,alias:rh"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Customer      string    `bun:"customer,notnull"`
	ReceivingDate string    `bun:"receiving_date,notnull"`
	WarehouseID   int64     `bun:"warehouse_id,notnull"`
	ReferenceNo   string    `bun:"reference_no,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Lines []ReceivingLine `bun:"rel:has-many,join:id=receiving_id"`
}

// Line status values.
const (
	LineStatusOK      = "ok"
	LineStatusDamaged = "damaged"
)

// ReceivingLine is one item/batch/quantity record within a header.
// Date columns are ISO yyyy-mm-dd strings; empty means not recorded.
type ReceivingLine struct {
	bun.BaseModel `bun:"table:receiving_lines,alias:rl"`

	ID                int64  `bun:"id,pk,autoincrement"`
	ReceivingID       int64  `bun:"receiving_id,notnull"`
	ItemID            int64  `bun:"item_id,notnull"`
	LocationID        int64  `bun:"location_id,notnull"`
	Quantity          int64  `bun:"quantity,notnull"`
	BatchNo           string `bun:"batch_no"`
	ManufacturingDate string `bun:"manufacturing_date"`
	ExpiryDate        string `bun:"expiry_date"`
	ShelfExpiryDate   string `bun:"shelf_expiry_date"`
	Status            string `bun:"status,notnull"`

	Header *ReceivingHeader `bun:"rel:belongs-to,join:receiving_id=id"`
}

// AuditLog captures immutable change history for receiving mutations.
// Actor is the chat session or client identifier that issued the change.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Actor      string    `bun:"actor,notnull"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
