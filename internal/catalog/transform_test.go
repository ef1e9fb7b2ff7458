package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"nutrition-catalog-service/internal/models"
)

func TestToRecordCoercesHeaderRow(t *testing.T) {
	row := map[string]any{
		"DID":                               "5",
		"Description":                       "  Preterm Formula 24kcal  ",
		"Short Name":                        "PTF24",
		"Direct Scanning":                   "1",
		"Displacement":                      "0.77",
		"Expiration After Opening ( hours)": "24",
		"Expiry Once Prepared (Only if Fortifier) ( hours )": "4",
	}

	rec := ToRecord(row)

	assert.Equal(t, 5, rec.DID)
	assert.Equal(t, "Preterm Formula 24kcal", rec.Description)
	assert.Equal(t, "PTF24", rec.ShortName)
	assert.Equal(t, 1, rec.DirectScanning)
	assert.Equal(t, 0.77, rec.Displacement)
	assert.Equal(t, 24.0, rec.ExpirationAfterOpeningHours)
	assert.Equal(t, 4.0, rec.ExpiryOncePreparedHours)
}

func TestToRecordDefaultsMissingCells(t *testing.T) {
	rec := ToRecord(map[string]any{})

	assert.Equal(t, 0, rec.DID)
	assert.Equal(t, "", rec.Description)
	assert.Equal(t, 0.0, rec.Displacement)
	assert.Equal(t, 0, rec.DirectScanning)
}

func TestToRecordUnparseableNumberBecomesZero(t *testing.T) {
	rec := ToRecord(map[string]any{
		"DID":          "not-a-number",
		"Displacement": "abc",
	})

	assert.Equal(t, 0, rec.DID)
	assert.Equal(t, 0.0, rec.Displacement)
}

func TestToRecordAcceptsTypedJSONValues(t *testing.T) {
	rec := ToRecord(map[string]any{
		"DID":          float64(7),
		"Displacement": 0.5,
		"Caloric Value": 24,
	})

	assert.Equal(t, 7, rec.DID)
	assert.Equal(t, 0.5, rec.Displacement)
	assert.Equal(t, "24", rec.CaloricValue)
}

func TestToRecordHeaderMatchingIsForgiving(t *testing.T) {
	// Uploaded headers arrive with stray whitespace, required markers and
	// arbitrary casing; all must land on the same field.
	variants := []string{"Description", " description ", "DESCRIPTION *"}
	for _, label := range variants {
		rec := ToRecord(map[string]any{label: "Formula"})
		assert.Equal(t, "Formula", rec.Description, "label %q", label)
	}
}

func TestToRowBlanksSentinelsButKeepsFlags(t *testing.T) {
	rec := models.Record{
		DID:            9,
		Description:    "Term Formula",
		DirectScanning: 0,
	}

	row := ToRow(rec)

	assert.Equal(t, 9, row[models.ColDID])
	assert.Equal(t, "Term Formula", row[models.ColDescription])
	assert.Nil(t, row[models.ColShortName])
	assert.Nil(t, row[models.ColDisplacement])
	// Direct Scanning is a flag: zero is an explicit "off", not absence.
	assert.Equal(t, 0, row[models.ColDirectScanning])
}

func TestToRowToRecordRoundTrip(t *testing.T) {
	records := []models.Record{
		{
			DID:                         5,
			Description:                 "Preterm Formula 24kcal",
			ShortName:                   "PTF24",
			Category:                    "Formula",
			CaloricValue:                "24",
			DirectScanning:              1,
			Displacement:                0.77,
			ExpirationAfterOpeningHours: 24,
			KitchenRecipe1:              "100 / 24",
		},
		{
			ProductID:          "A1-400",
			Container1Barcode:  "071000000001",
			Container1Quantity: "1",
			Container1Type:     "Can",
			Container1Volume:   "400",
			Container3Barcode:  "071000000099",
		},
		{},
	}

	for _, rec := range records {
		assert.Equal(t, rec, ToRecord(ToRow(rec)))
	}
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", CellText(nil))
	assert.Equal(t, "abc", CellText("abc"))
	assert.Equal(t, "5", CellText(5))
	assert.Equal(t, "0.77", CellText(0.77))
}
