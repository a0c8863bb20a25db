package inventory

// Row is one receiving line joined with its owning header, the unit the
// grid displays, edits and deletes.
type Row struct {
	HeaderID          int64  `bun:"header_id" json:"header_id"`
	LineID            int64  `bun:"line_id" json:"line_id"`
	Customer          string `bun:"customer" json:"customer"`
	ReceivingDate     string `bun:"receiving_date" json:"receiving_date"`
	ReferenceNo       string `bun:"reference_no" json:"reference_no"`
	Warehouse         string `bun:"warehouse" json:"warehouse"`
	ItemCode          string `bun:"item_code" json:"item_code"`
	Location          string `bun:"location" json:"location"`
	BatchNo           string `bun:"batch_no" json:"batch_no"`
	ManufacturingDate string `bun:"manufacturing_date" json:"manufacturing_date"`
	ExpiryDate        string `bun:"expiry_date" json:"expiry_date"`
	ShelfExpiryDate   string `bun:"shelf_expiry_date" json:"shelf_expiry_date"`
	Quantity          int64  `bun:"quantity" json:"quantity"`
	Status            string `bun:"status" json:"status"`
}

// Query scopes a search. Zero-valued fields are not applied. Q is one
// opaque keyword OR-matched across the text columns; the named fields
// narrow exactly.
type Query struct {
	Q           string
	Customer    string
	ReferenceNo string
	DateFrom    string
	DateTo      string
	ItemCode    string
	Warehouse   string
	Location    string
}
