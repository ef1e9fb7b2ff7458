package models

// FieldKind describes how a spreadsheet cell is coerced into a Record field.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldNumber FieldKind = "number"
	// FieldFlag is numeric but semantically an on/off marker rather than a
	// count, so a zero value is still rendered on export instead of blanked.
	FieldFlag FieldKind = "flag"
)

// ColumnScope identifies which half of the hierarchy owns a column.
type ColumnScope string

const (
	ScopeHeader ColumnScope = "header"
	ScopeItem   ColumnScope = "item"
)

// Record is one flat catalog row as exchanged with the interoperability
// service and with uploaded files. A row with a non-zero DID is a product
// header; a row with DID == 0 is a container item belonging to the most
// recent header.
type Record struct {
	AllowProductToBeFrozen      string  `json:"allowProductToBeFrozen"`
	Base                        string  `json:"base"`
	Description                 string  `json:"description"`
	BaseFormulaHL7ReferenceCode string  `json:"baseFormulaHL7ReferenceCode"`
	CaloricValue                string  `json:"caloricValue"`
	Category                    string  `json:"category"`
	Container1Barcode           string  `json:"container1Barcode"`
	Container1Quantity          string  `json:"container1Quantity"`
	Container1Type              string  `json:"container1Type"`
	Container1Volume            string  `json:"container1Volume"`
	Container2Barcode           string  `json:"container2Barcode"`
	Container2Quantity          string  `json:"container2Quantity"`
	Container2Type              string  `json:"container2Type"`
	Container2Volume            string  `json:"container2Volume"`
	Container3Barcode           string  `json:"container3Barcode"`
	Container3Type              string  `json:"container3Type"`
	Container3Volume            string  `json:"container3Volume"`
	DID                         int     `json:"DID"`
	DirectScanning              int     `json:"directScanning"`
	Displacement                float64 `json:"displacement"`
	ExpirationAfterOpeningHours float64 `json:"expirationAfterOpeningHours"`
	ExpiryOncePreparedHours     float64 `json:"expiryOncePreparedHours"`
	Fortifier                   string  `json:"fortifier"`
	KitchenRecipe1              string  `json:"kitchenRecipe1"`
	KitchenRecipe2              string  `json:"kitchenRecipe2"`
	KitchenRecipe3              string  `json:"kitchenRecipe3"`
	Modular                     string  `json:"modular"`
	ProductID                   string  `json:"productID"`
	ProductType                 string  `json:"productType"`
	ShortName                   string  `json:"shortName"`
	UseProductAsDonorMilk       string  `json:"useProductAsDonorMilk"`
}

// Column describes one spreadsheet column of the catalog sheet: its human
// label, coercion kind, and whether it belongs to the product header or to a
// container item row.
type Column struct {
	Label    string      `json:"label"`
	Kind     FieldKind   `json:"kind"`
	Scope    ColumnScope `json:"scope"`
	Required bool        `json:"required"`
	Example  string      `json:"example"`
}

// Label constants for the columns the transformer addresses directly. The
// odd spacing inside the parenthesised labels is faithful to the sheet the
// interoperability service produces; do not "fix" it.
const (
	ColAllowFrozen        = "Allow Product To Be Frozen"
	ColBase               = "Base"
	ColDescription        = "Description"
	ColHL7ReferenceCode   = "Base Formula HL7 Reference Code"
	ColCaloricValue       = "Caloric Value"
	ColCategory           = "Category"
	ColContainer1Barcode  = "Container 1 Barcode"
	ColContainer1Quantity = "Container 1 Quantity"
	ColContainer1Type     = "Container 1 Type"
	ColContainer1Volume   = "Container 1 Volume"
	ColContainer2Barcode  = "Container 2 Barcode"
	ColContainer2Quantity = "Container 2 Quantity"
	ColContainer2Type     = "Container 2 Type"
	ColContainer2Volume   = "Container 2 Volume"
	ColContainer3Barcode  = "Container 3 Barcode"
	ColContainer3Type     = "Container 3 Type"
	ColContainer3Volume   = "Container 3 Volume"
	ColDID                = "DID"
	ColDirectScanning     = "Direct Scanning"
	ColDisplacement       = "Displacement"
	ColExpirationHours    = "Expiration After Opening ( hours)"
	ColExpiryPrepared     = "Expiry Once Prepared (Only if Fortifier) ( hours )"
	ColFortifier          = "Fortifier"
	ColKitchenRecipe1     = "Kitchen Recipe #1 (Required Unit Volume / Target Caloric Density)"
	ColKitchenRecipe2     = "Kitchen Recipe #2 (Required Unit Volume / Target Caloric Density)"
	ColKitchenRecipe3     = "Kitchen Recipe #3 (Required Unit Volume / Target Caloric Density)"
	ColModular            = "Modular"
	ColProductID          = "Product ID"
	ColProductType        = "Product Type"
	ColShortName          = "Short Name"
	ColUseAsDonorMilk     = "Use Product As Donor Milk"
)

// CatalogColumns returns the column definitions for the catalog sheet in file
// order. Template generation, export and header validation all derive from
// this single table. Note container 3 has no quantity column.
func CatalogColumns() []Column {
	return []Column{
		{Label: ColDID, Kind: FieldNumber, Scope: ScopeHeader, Required: true, Example: "5"},
		{Label: ColDescription, Kind: FieldText, Scope: ScopeHeader, Required: true, Example: "Preterm Formula 24kcal"},
		{Label: ColShortName, Kind: FieldText, Scope: ScopeHeader, Example: "PTF24"},
		{Label: ColCategory, Kind: FieldText, Scope: ScopeHeader, Example: "Formula"},
		{Label: ColProductType, Kind: FieldText, Scope: ScopeHeader, Example: "Powder"},
		{Label: ColBase, Kind: FieldText, Scope: ScopeHeader, Example: "Cow Milk"},
		{Label: ColCaloricValue, Kind: FieldText, Scope: ScopeHeader, Example: "24"},
		{Label: ColHL7ReferenceCode, Kind: FieldText, Scope: ScopeHeader, Example: "PTF-24"},
		{Label: ColFortifier, Kind: FieldText, Scope: ScopeHeader, Example: "No"},
		{Label: ColModular, Kind: FieldText, Scope: ScopeHeader, Example: "No"},
		{Label: ColAllowFrozen, Kind: FieldText, Scope: ScopeHeader, Example: "Yes"},
		{Label: ColUseAsDonorMilk, Kind: FieldText, Scope: ScopeHeader, Example: "No"},
		{Label: ColDirectScanning, Kind: FieldFlag, Scope: ScopeHeader, Example: "1"},
		{Label: ColDisplacement, Kind: FieldNumber, Scope: ScopeHeader, Example: "0.77"},
		{Label: ColExpirationHours, Kind: FieldNumber, Scope: ScopeHeader, Example: "24"},
		{Label: ColExpiryPrepared, Kind: FieldNumber, Scope: ScopeHeader, Example: "4"},
		{Label: ColKitchenRecipe1, Kind: FieldText, Scope: ScopeHeader, Example: "100 / 24"},
		{Label: ColKitchenRecipe2, Kind: FieldText, Scope: ScopeHeader, Example: ""},
		{Label: ColKitchenRecipe3, Kind: FieldText, Scope: ScopeHeader, Example: ""},
		{Label: ColProductID, Kind: FieldText, Scope: ScopeItem, Example: "A1-400"},
		{Label: ColContainer1Barcode, Kind: FieldText, Scope: ScopeItem, Example: "071000000001"},
		{Label: ColContainer1Quantity, Kind: FieldText, Scope: ScopeItem, Example: "1"},
		{Label: ColContainer1Type, Kind: FieldText, Scope: ScopeItem, Example: "Can"},
		{Label: ColContainer1Volume, Kind: FieldText, Scope: ScopeItem, Example: "400"},
		{Label: ColContainer2Barcode, Kind: FieldText, Scope: ScopeItem, Example: ""},
		{Label: ColContainer2Quantity, Kind: FieldText, Scope: ScopeItem, Example: ""},
		{Label: ColContainer2Type, Kind: FieldText, Scope: ScopeItem, Example: ""},
		{Label: ColContainer2Volume, Kind: FieldText, Scope: ScopeItem, Example: ""},
		{Label: ColContainer3Barcode, Kind: FieldText, Scope: ScopeItem, Example: ""},
		{Label: ColContainer3Type, Kind: FieldText, Scope: ScopeItem, Example: ""},
		{Label: ColContainer3Volume, Kind: FieldText, Scope: ScopeItem, Example: ""},
	}
}
