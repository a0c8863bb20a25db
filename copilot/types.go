package copilot

import "context"

// Slots holds the values the interpreter extracted from one utterance.
// JSON numbers arrive as float64.
type Slots map[string]any

// Text returns the slot as a trimmed string, or "" when absent.
func (s Slots) Text(key string) string {
	switch v := s[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

// Number returns the slot as an integer quantity. Interpreters emit
// quantities as JSON numbers, but a digit string is accepted too.
func (s Slots) Number(key string) (int64, bool) {
	switch v := s[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		var n int64
		var neg bool
		for i, r := range v {
			if i == 0 && (r == '-' || r == '+') {
				neg = r == '-'
				continue
			}
			if r < '0' || r > '9' {
				return 0, false
			}
			n = n*10 + int64(r-'0')
		}
		if v == "" || v == "-" || v == "+" {
			return 0, false
		}
		if neg {
			n = -n
		}
		return n, true
	default:
		return 0, false
	}
}

// InterpretationResult is what the interpreter backend returns for one
// utterance. Immutable after receipt.
type InterpretationResult struct {
	Intent    string   `json:"intent"`
	Slots     Slots    `json:"slots"`
	Missing   []string `json:"missing,omitempty"`
	Action    string   `json:"action"`
	Status    string   `json:"status,omitempty"`
	Response  string   `json:"response,omitempty"`
	Confirmed bool     `json:"confirmed,omitempty"`
}

// InventoryRow is one committed receiving line joined with its header.
// The backend owns it; the client keeps only a display copy between
// refreshes. Date fields are ISO strings, empty when not recorded.
type InventoryRow struct {
	LineID            int64  `json:"line_id"`
	HeaderID          int64  `json:"header_id"`
	Customer          string `json:"customer"`
	ReceivingDate     string `json:"receiving_date"`
	ReferenceNo       string `json:"reference_no"`
	Warehouse         string `json:"warehouse"`
	ItemCode          string `json:"item_code"`
	Location          string `json:"location"`
	BatchNo           string `json:"batch_no"`
	ManufacturingDate string `json:"manufacturing_date"`
	ExpiryDate        string `json:"expiry_date"`
	ShelfExpiryDate   string `json:"shelf_expiry_date"`
	Quantity          int64  `json:"quantity"`
	Status            string `json:"status"`
}

// Filter scopes an inventory search. Zero values are not sent.
type Filter struct {
	Q           string `json:"q,omitempty"`
	Customer    string `json:"customer,omitempty"`
	ReferenceNo string `json:"reference_no,omitempty"`
	DateFrom    string `json:"date_from,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
}

// LinePatch is a partial line update; nil fields are left unchanged.
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

// HeaderPatch is a partial header update; nil fields are left unchanged.
type HeaderPatch struct {
	Customer      *string `json:"customer,omitempty"`
	ReceivingDate *string `json:"receiving_date,omitempty"`
	ReferenceNo   *string `json:"reference_no,omitempty"`
	Warehouse     *string `json:"warehouse,omitempty"`
}

// LineItemDraft collects one line of the receiving form before submission.
type LineItemDraft struct {
	ItemCode          string `json:"item_code"`
	Location          string `json:"location"`
	BatchNo           string `json:"batch_no,omitempty"`
	ManufacturingDate string `json:"manufacturing_date,omitempty"`
	ExpiryDate        string `json:"expiry_date,omitempty"`
	ShelfExpiryDate   string `json:"shelf_expiry_date,omitempty"`
	Quantity          int64  `json:"quantity"`
	Status            string `json:"status"`
}

// ReceivingDraft is the full receiving form: one header plus its lines.
type ReceivingDraft struct {
	Customer      string          `json:"customer"`
	Warehouse     string          `json:"warehouse"`
	ReceivingDate string          `json:"receiving_date"`
	ReferenceNo   string          `json:"reference_no"`
	Items         []LineItemDraft `json:"items"`
}

// Inventory reads committed rows from the backend.
type Inventory interface {
	SearchInventory(ctx context.Context, f Filter) ([]InventoryRow, error)
}

// Mutator issues the four remote mutations the dispatcher relies on.
type Mutator interface {
	PatchLine(ctx context.Context, lineID int64, fields LinePatch) error
	PatchHeader(ctx context.Context, headerID int64, fields HeaderPatch) error
	DeleteLine(ctx context.Context, lineID int64) error
	ConfirmReceiving(ctx context.Context, draft ReceivingDraft) (int64, error)
}

// Chatter produces a free-text reply when no structured action applies.
type Chatter interface {
	ChatReply(ctx context.Context, message string) (string, error)
}

// Interpreter turns an utterance into intent, action and slots.
type Interpreter interface {
	Interpret(ctx context.Context, message, sessionID string) (InterpretationResult, error)
}
