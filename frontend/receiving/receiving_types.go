package receiving

// ConfirmRequest is the receive form payload: one header plus its lines.
type ConfirmRequest struct {
	Customer      string      `json:"customer"`
	ReceivingDate string      `json:"receiving_date"`
	Warehouse     string      `json:"warehouse"`
	ReferenceNo   string      `json:"reference_no"`
	Items         []LineInput `json:"items"`
}

// LineInput is one line of the receive form. Status defaults to ok.
type LineInput struct {
	ItemCode          string `json:"item_code"`
	Location          string `json:"location"`
	Quantity          int64  `json:"quantity"`
	BatchNo           string `json:"batch_no"`
	ManufacturingDate string `json:"manufacturing_date"`
	ExpiryDate        string `json:"expiry_date"`
	ShelfExpiryDate   string `json:"shelf_expiry_date"`
	Status            string `json:"status"`
}

// LinePatch is a partial line update. Nil fields are left untouched.
// Item and location arrive as codes and are re-resolved to ids.
type LinePatch struct {
	ItemCode          *string `json:"item_code,omitempty"`
	Location          *string `json:"location,omitempty"`
	BatchNo           *string `json:"batch_no,omitempty"`
	ManufacturingDate *string `json:"manufacturing_date,omitempty"`
	ExpiryDate        *string `json:"expiry_date,omitempty"`
	ShelfExpiryDate   *string `json:"shelf_expiry_date,omitempty"`
	Quantity          *int64  `json:"quantity,omitempty"`
	Status            *string `json:"status,omitempty"`
}

// HeaderPatch is a partial header update. Nil fields are left untouched.
type HeaderPatch struct {
	Customer      *string `json:"customer,omitempty"`
	ReceivingDate *string `json:"receiving_date,omitempty"`
	ReferenceNo   *string `json:"reference_no,omitempty"`
	Warehouse     *string `json:"warehouse,omitempty"`
}

// GRNData feeds the goods-received-note PDF.
type GRNData struct {
	HeaderID      int64
	Customer      string
	ReceivingDate string
	ReferenceNo   string
	Warehouse     string
	Lines         []GRNLine
}

// GRNLine is one printed row on the goods-received note.
type GRNLine struct {
	ItemCode string `bun:"item_code"`
	ItemName string `bun:"item_name"`
	Location string `bun:"location"`
	BatchNo  string `bun:"batch_no"`
	Quantity int64  `bun:"quantity"`
	Status   string `bun:"status"`
}
