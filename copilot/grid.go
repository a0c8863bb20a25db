package copilot

import "context"

// RowDraft holds the edited values of one grid row before save. The
// grid denormalizes header and line into one row, so a row save carries
// both header and line fields.
type RowDraft struct {
	LineID   int64
	HeaderID int64

	Customer      string
	ReceivingDate string
	ReferenceNo   string
	Warehouse     string

	ItemCode          string
	Location          string
	BatchNo           string
	ManufacturingDate string
	ExpiryDate        string
	ShelfExpiryDate   string
	Quantity          int64
	Status            string
}

// DraftFromRow seeds a draft with the row's current committed values.
func DraftFromRow(r InventoryRow) RowDraft {
	return RowDraft{
		LineID:            r.LineID,
		HeaderID:          r.HeaderID,
		Customer:          r.Customer,
		ReceivingDate:     r.ReceivingDate,
		ReferenceNo:       r.ReferenceNo,
		Warehouse:         r.Warehouse,
		ItemCode:          r.ItemCode,
		Location:          r.Location,
		BatchNo:           r.BatchNo,
		ManufacturingDate: r.ManufacturingDate,
		ExpiryDate:        r.ExpiryDate,
		ShelfExpiryDate:   r.ShelfExpiryDate,
		Quantity:          r.Quantity,
		Status:            r.Status,
	}
}

// Validate checks the required header and line fields. It reports every
// missing field in one aggregated error; a draft that fails validation
// must cause zero network calls.
func (d RowDraft) Validate() error {
	var missing []string
	if d.Customer == "" {
		missing = append(missing, "customer")
	}
	if d.ReceivingDate == "" {
		missing = append(missing, "receiving_date")
	}
	if d.ReferenceNo == "" {
		missing = append(missing, "reference_no")
	}
	if d.Warehouse == "" {
		missing = append(missing, "warehouse")
	}
	if d.ItemCode == "" {
		missing = append(missing, "item_code")
	}
	if d.Location == "" {
		missing = append(missing, "location")
	}
	if d.Status == "" {
		missing = append(missing, "status")
	}
	if d.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// SaveRow commits an edited row: header patch first, then line patch.
// The two writes are sequential and uncompensated — a line failure after
// a successful header write leaves the header updated; the caller
// recovers consistency with a scoped refresh, not a rollback.
func SaveRow(ctx context.Context, mut Mutator, d RowDraft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	header := HeaderPatch{
		Customer:      &d.Customer,
		ReceivingDate: &d.ReceivingDate,
		ReferenceNo:   &d.ReferenceNo,
		Warehouse:     &d.Warehouse,
	}
	if err := mut.PatchHeader(ctx, d.HeaderID, header); err != nil {
		return err
	}

	line := LinePatch{
		ItemCode:          &d.ItemCode,
		Location:          &d.Location,
		BatchNo:           &d.BatchNo,
		ManufacturingDate: &d.ManufacturingDate,
		ExpiryDate:        &d.ExpiryDate,
		ShelfExpiryDate:   &d.ShelfExpiryDate,
		Quantity:          &d.Quantity,
		Status:            &d.Status,
	}
	return mut.PatchLine(ctx, d.LineID, line)
}

// ValidateDraft checks the receiving form before ConfirmReceiving is
// called: all header fields, and per line item code, status and a
// positive quantity.
func ValidateDraft(d ReceivingDraft) error {
	var missing []string
	if d.Customer == "" {
		missing = append(missing, "customer")
	}
	if d.Warehouse == "" {
		missing = append(missing, "warehouse")
	}
	if d.ReceivingDate == "" {
		missing = append(missing, "receiving_date")
	}
	if d.ReferenceNo == "" {
		missing = append(missing, "reference_no")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	for _, item := range d.Items {
		if item.ItemCode == "" || item.Quantity <= 0 || item.Status == "" {
			return &ValidationError{Missing: []string{"each line needs item_code, quantity > 0, status"}}
		}
	}
	return nil
}
