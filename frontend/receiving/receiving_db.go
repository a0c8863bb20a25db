package receiving

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"warecopilot/infrastructure/audit"
	"warecopilot/infrastructure/sqlite"
	"warecopilot/models"
)

// ErrInvalidInput marks payload problems the caller should fix. Handlers
// map it to 400 rather than 500.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

// ConfirmReceiving stores one header and its lines in a single write
// transaction. Unknown item codes are created on the fly; unknown
// warehouse or location codes fail the whole request.
func ConfirmReceiving(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actor string, req ConfirmRequest) (int64, error) {
	if err := validateConfirm(req); err != nil {
		return 0, err
	}

	var headerID int64
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		warehouse, err := warehouseByCode(ctx, tx, req.Warehouse)
		if err != nil {
			return err
		}

		header := models.ReceivingHeader{
			Customer:      strings.TrimSpace(req.Customer),
			ReceivingDate: strings.TrimSpace(req.ReceivingDate),
			WarehouseID:   warehouse.ID,
			ReferenceNo:   strings.TrimSpace(req.ReferenceNo),
		}
		if _, err := tx.NewInsert().Model(&header).Exec(ctx); err != nil {
			return err
		}

		for _, in := range req.Items {
			itemID, err := itemIDByCode(ctx, tx, in.ItemCode)
			if err != nil {
				return err
			}
			location, err := locationByCode(ctx, tx, warehouse.ID, in.Location)
			if err != nil {
				return err
			}
			line := models.ReceivingLine{
				ReceivingID:       header.ID,
				ItemID:            itemID,
				LocationID:        location.ID,
				Quantity:          in.Quantity,
				BatchNo:           strings.TrimSpace(in.BatchNo),
				ManufacturingDate: strings.TrimSpace(in.ManufacturingDate),
				ExpiryDate:        strings.TrimSpace(in.ExpiryDate),
				ShelfExpiryDate:   strings.TrimSpace(in.ShelfExpiryDate),
				Status:            lineStatus(in.Status),
			}
			if _, err := tx.NewInsert().Model(&line).Exec(ctx); err != nil {
				return err
			}
		}

		if auditSvc != nil {
			if err := auditSvc.Write(ctx, tx, actor, "receiving.confirm", "receiving_headers", fmt.Sprintf("%d", header.ID), nil, req); err != nil {
				return err
			}
		}
		headerID = header.ID
		return nil
	})
	return headerID, err
}

func validateConfirm(req ConfirmRequest) error {
	if strings.TrimSpace(req.Customer) == "" {
		return invalidf("customer is required")
	}
	if strings.TrimSpace(req.ReceivingDate) == "" {
		return invalidf("receiving_date is required")
	}
	if strings.TrimSpace(req.ReferenceNo) == "" {
		return invalidf("reference_no is required")
	}
	if strings.TrimSpace(req.Warehouse) == "" {
		return invalidf("warehouse is required")
	}
	if len(req.Items) == 0 {
		return invalidf("at least one line is required")
	}
	for i, in := range req.Items {
		if strings.TrimSpace(in.ItemCode) == "" {
			return invalidf("line %d: item_code is required", i+1)
		}
		if strings.TrimSpace(in.Location) == "" {
			return invalidf("line %d: location is required", i+1)
		}
		if in.Quantity <= 0 {
			return invalidf("line %d: quantity must be greater than 0", i+1)
		}
		if s := lineStatus(in.Status); s != models.LineStatusOK && s != models.LineStatusDamaged {
			return invalidf("line %d: status must be ok or damaged", i+1)
		}
	}
	return nil
}

// PatchLine applies a partial update to one line. Item and location
// codes are re-resolved; the location must exist in the header's
// warehouse.
func PatchLine(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actor string, lineID int64, patch LinePatch) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var line models.ReceivingLine
		if err := tx.NewSelect().Model(&line).Where("rl.id = ?", lineID).Scan(ctx); err != nil {
			return err
		}
		before := line

		if patch.ItemCode != nil {
			itemID, err := itemIDByCode(ctx, tx, *patch.ItemCode)
			if err != nil {
				return err
			}
			line.ItemID = itemID
		}
		if patch.Location != nil {
			var header models.ReceivingHeader
			if err := tx.NewSelect().Model(&header).Where("rh.id = ?", line.ReceivingID).Scan(ctx); err != nil {
				return err
			}
			location, err := locationByCode(ctx, tx, header.WarehouseID, *patch.Location)
			if err != nil {
				return err
			}
			line.LocationID = location.ID
		}
		if patch.BatchNo != nil {
			line.BatchNo = strings.TrimSpace(*patch.BatchNo)
		}
		if patch.ManufacturingDate != nil {
			line.ManufacturingDate = strings.TrimSpace(*patch.ManufacturingDate)
		}
		if patch.ExpiryDate != nil {
			line.ExpiryDate = strings.TrimSpace(*patch.ExpiryDate)
		}
		if patch.ShelfExpiryDate != nil {
			line.ShelfExpiryDate = strings.TrimSpace(*patch.ShelfExpiryDate)
		}
		if patch.Quantity != nil {
			if *patch.Quantity < 0 {
				return invalidf("quantity cannot be negative")
			}
			line.Quantity = *patch.Quantity
		}
		if patch.Status != nil {
			s := lineStatus(*patch.Status)
			if s != models.LineStatusOK && s != models.LineStatusDamaged {
				return invalidf("status must be ok or damaged")
			}
			line.Status = s
		}

		if _, err := tx.NewUpdate().Model(&line).WherePK().Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, actor, "line.update", "receiving_lines", fmt.Sprintf("%d", line.ID), before, line)
		}
		return nil
	})
}

// PatchHeader applies a partial update to one header. The warehouse
// arrives as a code and must exist.
func PatchHeader(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actor string, headerID int64, patch HeaderPatch) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var header models.ReceivingHeader
		if err := tx.NewSelect().Model(&header).Where("rh.id = ?", headerID).Scan(ctx); err != nil {
			return err
		}
		before := header

		if patch.Customer != nil {
			if strings.TrimSpace(*patch.Customer) == "" {
				return invalidf("customer cannot be empty")
			}
			header.Customer = strings.TrimSpace(*patch.Customer)
		}
		if patch.ReceivingDate != nil {
			if strings.TrimSpace(*patch.ReceivingDate) == "" {
				return invalidf("receiving_date cannot be empty")
			}
			header.ReceivingDate = strings.TrimSpace(*patch.ReceivingDate)
		}
		if patch.ReferenceNo != nil {
			if strings.TrimSpace(*patch.ReferenceNo) == "" {
				return invalidf("reference_no cannot be empty")
			}
			header.ReferenceNo = strings.TrimSpace(*patch.ReferenceNo)
		}
		if patch.Warehouse != nil {
			warehouse, err := warehouseByCode(ctx, tx, *patch.Warehouse)
			if err != nil {
				return err
			}
			header.WarehouseID = warehouse.ID
		}

		if _, err := tx.NewUpdate().Model(&header).WherePK().Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, actor, "header.update", "receiving_headers", fmt.Sprintf("%d", header.ID), before, header)
		}
		return nil
	})
}

// DeleteLine removes one line. The owning header stays even when this
// was its last line.
func DeleteLine(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actor string, lineID int64) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var line models.ReceivingLine
		if err := tx.NewSelect().Model(&line).Where("rl.id = ?", lineID).Scan(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model(&line).WherePK().Exec(ctx); err != nil {
			return err
		}
		if auditSvc != nil {
			return auditSvc.Write(ctx, tx, actor, "line.delete", "receiving_lines", fmt.Sprintf("%d", line.ID), line, nil)
		}
		return nil
	})
}

// LoadGRNData collects everything the goods-received note prints.
func LoadGRNData(ctx context.Context, db *sqlite.DB, headerID int64) (GRNData, error) {
	data := GRNData{HeaderID: headerID, Lines: make([]GRNLine, 0)}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewRaw(`
SELECT rh.customer, rh.receiving_date, rh.reference_no, w.code
FROM receiving_headers rh
JOIN warehouses w ON w.id = rh.warehouse_id
WHERE rh.id = ?`, headerID).Scan(ctx, &data.Customer, &data.ReceivingDate, &data.ReferenceNo, &data.Warehouse); err != nil {
			return err
		}
		return tx.NewRaw(`
SELECT i.code AS item_code, i.name AS item_name, l.code AS location,
       rl.batch_no, rl.quantity, rl.status
FROM receiving_lines rl
JOIN items i ON i.id = rl.item_id
JOIN locations l ON l.id = rl.location_id
WHERE rl.receiving_id = ?
ORDER BY rl.id ASC`, headerID).Scan(ctx, &data.Lines)
	})
	return data, err
}

func warehouseByCode(ctx context.Context, tx bun.Tx, code string) (models.Warehouse, error) {
	code = strings.TrimSpace(code)
	var warehouse models.Warehouse
	err := tx.NewSelect().Model(&warehouse).Where("w.code = ?", code).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return warehouse, fmt.Errorf("warehouse %q: %w", code, sql.ErrNoRows)
	}
	return warehouse, err
}

func locationByCode(ctx context.Context, tx bun.Tx, warehouseID int64, code string) (models.Location, error) {
	code = strings.TrimSpace(code)
	var location models.Location
	err := tx.NewSelect().Model(&location).
		Where("l.warehouse_id = ?", warehouseID).
		Where("l.code = ?", code).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return location, fmt.Errorf("location %q: %w", code, sql.ErrNoRows)
	}
	return location, err
}

func itemIDByCode(ctx context.Context, tx bun.Tx, code string) (int64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, invalidf("item_code cannot be empty")
	}
	var item models.Item
	err := tx.NewSelect().Model(&item).Where("i.code = ?", code).Limit(1).Scan(ctx)
	if err == nil {
		return item.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	item = models.Item{Code: code, Name: code}
	if _, err := tx.NewInsert().Model(&item).Exec(ctx); err != nil {
		return 0, err
	}
	return item.ID, nil
}

func lineStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.LineStatusOK
	}
	return s
}
