package catalog

import (
	"fmt"

	"nutrition-catalog-service/internal/models"
)

// Row is a classified flat record: either a product header or a container
// item. Classification happens once at the boundary so nothing downstream
// has to re-check the DID sentinel.
type Row interface {
	isRow()
}

// HeaderRow starts a new product in an import batch.
type HeaderRow struct {
	Product models.Product
}

// ItemRow belongs to the most recently seen header.
type ItemRow struct {
	Item models.Item
}

func (HeaderRow) isRow() {}
func (ItemRow) isRow()   {}

// Classify splits one flat record into its header or item half. A non-zero
// DID marks a header row; everything else is an item of the preceding
// header.
func Classify(rec models.Record) Row {
	if rec.DID != 0 {
		return HeaderRow{Product: models.Product{
			DID:                         rec.DID,
			Description:                 rec.Description,
			ShortName:                   rec.ShortName,
			Category:                    rec.Category,
			ProductType:                 rec.ProductType,
			Base:                        rec.Base,
			CaloricValue:                rec.CaloricValue,
			BaseFormulaHL7ReferenceCode: rec.BaseFormulaHL7ReferenceCode,
			Fortifier:                   rec.Fortifier,
			Modular:                     rec.Modular,
			AllowProductToBeFrozen:      rec.AllowProductToBeFrozen,
			UseProductAsDonorMilk:       rec.UseProductAsDonorMilk,
			DirectScanning:              rec.DirectScanning,
			Displacement:                rec.Displacement,
			ExpirationAfterOpeningHours: rec.ExpirationAfterOpeningHours,
			ExpiryOncePreparedHours:     rec.ExpiryOncePreparedHours,
			KitchenRecipe1:              rec.KitchenRecipe1,
			KitchenRecipe2:              rec.KitchenRecipe2,
			KitchenRecipe3:              rec.KitchenRecipe3,
			Items:                       []models.Item{},
		}}
	}
	return ItemRow{Item: models.Item{
		ProductID:          rec.ProductID,
		Container1Barcode:  rec.Container1Barcode,
		Container1Quantity: rec.Container1Quantity,
		Container1Type:     rec.Container1Type,
		Container1Volume:   rec.Container1Volume,
		Container2Barcode:  rec.Container2Barcode,
		Container2Quantity: rec.Container2Quantity,
		Container2Type:     rec.Container2Type,
		Container2Volume:   rec.Container2Volume,
		Container3Barcode:  rec.Container3Barcode,
		Container3Type:     rec.Container3Type,
		Container3Volume:   rec.Container3Volume,
	}}
}

// Restructure folds an ordered sequence of flat records into product trees.
// Items attach to the most recently seen header; an item with no preceding
// header is rejected with the 1-based position of the offending row.
func Restructure(records []models.Record) ([]models.Product, error) {
	products := make([]models.Product, 0, len(records))
	for i, rec := range records {
		switch row := Classify(rec).(type) {
		case HeaderRow:
			products = append(products, row.Product)
		case ItemRow:
			if len(products) == 0 {
				return nil, fmt.Errorf("row %d: item row precedes any product header", i+1)
			}
			last := &products[len(products)-1]
			last.Items = append(last.Items, row.Item)
		}
	}
	return products, nil
}

// Flatten is the inverse of Restructure: one header row per product with the
// item columns blanked, followed by one row per item with the header columns
// blanked and DID forced to the zero sentinel. File order is preserved, so
// Flatten(Restructure(rows)) reproduces rows for well-formed input.
func Flatten(products []models.Product) []models.Record {
	var records []models.Record
	for _, p := range products {
		records = append(records, models.Record{
			DID:                         p.DID,
			Description:                 p.Description,
			ShortName:                   p.ShortName,
			Category:                    p.Category,
			ProductType:                 p.ProductType,
			Base:                        p.Base,
			CaloricValue:                p.CaloricValue,
			BaseFormulaHL7ReferenceCode: p.BaseFormulaHL7ReferenceCode,
			Fortifier:                   p.Fortifier,
			Modular:                     p.Modular,
			AllowProductToBeFrozen:      p.AllowProductToBeFrozen,
			UseProductAsDonorMilk:       p.UseProductAsDonorMilk,
			DirectScanning:              p.DirectScanning,
			Displacement:                p.Displacement,
			ExpirationAfterOpeningHours: p.ExpirationAfterOpeningHours,
			ExpiryOncePreparedHours:     p.ExpiryOncePreparedHours,
			KitchenRecipe1:              p.KitchenRecipe1,
			KitchenRecipe2:              p.KitchenRecipe2,
			KitchenRecipe3:              p.KitchenRecipe3,
		})
		for _, item := range p.Items {
			records = append(records, models.Record{
				ProductID:          item.ProductID,
				Container1Barcode:  item.Container1Barcode,
				Container1Quantity: item.Container1Quantity,
				Container1Type:     item.Container1Type,
				Container1Volume:   item.Container1Volume,
				Container2Barcode:  item.Container2Barcode,
				Container2Quantity: item.Container2Quantity,
				Container2Type:     item.Container2Type,
				Container2Volume:   item.Container2Volume,
				Container3Barcode:  item.Container3Barcode,
				Container3Type:     item.Container3Type,
				Container3Volume:   item.Container3Volume,
			})
		}
	}
	return records
}
