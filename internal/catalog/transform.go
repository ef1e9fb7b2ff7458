// Package catalog implements the import reconciliation engine: the row
// transformer between human-labeled sheet rows and typed records, the
// hierarchy builder that folds flat rows into product/item trees, and the
// per-identifier-space duplicate detector.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"nutrition-catalog-service/internal/models"
)

// normalizeLabel canonicalizes a sheet header for lookup: whitespace trimmed,
// required marker stripped, case folded. Matches how uploaded headers are
// cleaned during parsing.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.TrimSuffix(label, " *")
	return strings.ToLower(label)
}

// rowReader wraps a raw key/value row with coercion helpers. Values may be
// strings (CSV/XLSX uploads), numbers (JSON payloads) or absent.
type rowReader struct {
	values map[string]any
}

func newRowReader(row map[string]any) rowReader {
	values := make(map[string]any, len(row))
	for k, v := range row {
		values[normalizeLabel(k)] = v
	}
	return rowReader{values: values}
}

// text returns the cell under label as a trimmed string, "" when absent.
func (r rowReader) text(label string) string {
	v, ok := r.values[normalizeLabel(label)]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case json.Number:
		return s.String()
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

// number returns the cell under label as a float64, 0 when absent or not
// parseable. Mirrors the Number(...) || 0 coercion of the source sheets.
func (r rowReader) number(label string) float64 {
	s := r.text(label)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// integer is number truncated to an int, used for identifiers and flags.
func (r rowReader) integer(label string) int {
	return int(r.number(label))
}

// ToRecord converts one human-labeled row into a typed flat record. Missing
// or blank text cells become "", missing or unparseable numeric cells become
// 0 (which doubles as the "this is an item row" sentinel for DID).
func ToRecord(row map[string]any) models.Record {
	r := newRowReader(row)
	return models.Record{
		AllowProductToBeFrozen:      r.text(models.ColAllowFrozen),
		Base:                        r.text(models.ColBase),
		Description:                 r.text(models.ColDescription),
		BaseFormulaHL7ReferenceCode: r.text(models.ColHL7ReferenceCode),
		CaloricValue:                r.text(models.ColCaloricValue),
		Category:                    r.text(models.ColCategory),
		Container1Barcode:           r.text(models.ColContainer1Barcode),
		Container1Quantity:          r.text(models.ColContainer1Quantity),
		Container1Type:              r.text(models.ColContainer1Type),
		Container1Volume:            r.text(models.ColContainer1Volume),
		Container2Barcode:           r.text(models.ColContainer2Barcode),
		Container2Quantity:          r.text(models.ColContainer2Quantity),
		Container2Type:              r.text(models.ColContainer2Type),
		Container2Volume:            r.text(models.ColContainer2Volume),
		Container3Barcode:           r.text(models.ColContainer3Barcode),
		Container3Type:              r.text(models.ColContainer3Type),
		Container3Volume:            r.text(models.ColContainer3Volume),
		DID:                         r.integer(models.ColDID),
		DirectScanning:              r.integer(models.ColDirectScanning),
		Displacement:                r.number(models.ColDisplacement),
		ExpirationAfterOpeningHours: r.number(models.ColExpirationHours),
		ExpiryOncePreparedHours:     r.number(models.ColExpiryPrepared),
		Fortifier:                   r.text(models.ColFortifier),
		KitchenRecipe1:              r.text(models.ColKitchenRecipe1),
		KitchenRecipe2:              r.text(models.ColKitchenRecipe2),
		KitchenRecipe3:              r.text(models.ColKitchenRecipe3),
		Modular:                     r.text(models.ColModular),
		ProductID:                   r.text(models.ColProductID),
		ProductType:                 r.text(models.ColProductType),
		ShortName:                   r.text(models.ColShortName),
		UseProductAsDonorMilk:       r.text(models.ColUseAsDonorMilk),
	}
}

// optText renders a text field for export: nil when empty so the consumer
// sees an absent cell rather than a literal empty string.
func optText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// optNumber renders a numeric field for export: nil when zero. The zero
// sentinel is how "no value" is encoded on the domain side, so it must not
// leak into exported sheets as a literal 0.
func optNumber(n float64) any {
	if n == 0 {
		return nil
	}
	return n
}

func optInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// ToRow converts a typed record back into a human-labeled row for export or
// for the save payload. Sentinel values (empty strings, zero numbers) are
// rendered as absent; Direct Scanning is a flag, not a count, so its zero is
// meaningful and kept. ToRecord(ToRow(r)) == r for any r produced by
// ToRecord.
func ToRow(rec models.Record) map[string]any {
	return map[string]any{
		models.ColAllowFrozen:        optText(rec.AllowProductToBeFrozen),
		models.ColBase:               optText(rec.Base),
		models.ColDescription:        optText(rec.Description),
		models.ColHL7ReferenceCode:   optText(rec.BaseFormulaHL7ReferenceCode),
		models.ColCaloricValue:       optText(rec.CaloricValue),
		models.ColCategory:           optText(rec.Category),
		models.ColContainer1Barcode:  optText(rec.Container1Barcode),
		models.ColContainer1Quantity: optText(rec.Container1Quantity),
		models.ColContainer1Type:     optText(rec.Container1Type),
		models.ColContainer1Volume:   optText(rec.Container1Volume),
		models.ColContainer2Barcode:  optText(rec.Container2Barcode),
		models.ColContainer2Quantity: optText(rec.Container2Quantity),
		models.ColContainer2Type:     optText(rec.Container2Type),
		models.ColContainer2Volume:   optText(rec.Container2Volume),
		models.ColContainer3Barcode:  optText(rec.Container3Barcode),
		models.ColContainer3Type:     optText(rec.Container3Type),
		models.ColContainer3Volume:   optText(rec.Container3Volume),
		models.ColDID:                optInt(rec.DID),
		models.ColDirectScanning:     rec.DirectScanning,
		models.ColDisplacement:       optNumber(rec.Displacement),
		models.ColExpirationHours:    optNumber(rec.ExpirationAfterOpeningHours),
		models.ColExpiryPrepared:     optNumber(rec.ExpiryOncePreparedHours),
		models.ColFortifier:          optText(rec.Fortifier),
		models.ColKitchenRecipe1:     optText(rec.KitchenRecipe1),
		models.ColKitchenRecipe2:     optText(rec.KitchenRecipe2),
		models.ColKitchenRecipe3:     optText(rec.KitchenRecipe3),
		models.ColModular:            optText(rec.Modular),
		models.ColProductID:          optText(rec.ProductID),
		models.ColProductType:        optText(rec.ProductType),
		models.ColShortName:          optText(rec.ShortName),
		models.ColUseAsDonorMilk:     optText(rec.UseProductAsDonorMilk),
	}
}

// CellText renders a single exported row value for flat formats (CSV, XLSX)
// where absence is an empty cell.
func CellText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
