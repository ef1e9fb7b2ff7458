package models

// Product is a catalog header entity, uniquely identified by DID. Items keep
// their file order; the order matters for display, not for uniqueness.
type Product struct {
	DID                         int     `json:"DID"`
	Description                 string  `json:"description"`
	ShortName                   string  `json:"shortName"`
	Category                    string  `json:"category"`
	ProductType                 string  `json:"productType"`
	Base                        string  `json:"base"`
	CaloricValue                string  `json:"caloricValue"`
	BaseFormulaHL7ReferenceCode string  `json:"baseFormulaHL7ReferenceCode"`
	Fortifier                   string  `json:"fortifier"`
	Modular                     string  `json:"modular"`
	AllowProductToBeFrozen      string  `json:"allowProductToBeFrozen"`
	UseProductAsDonorMilk       string  `json:"useProductAsDonorMilk"`
	DirectScanning              int     `json:"directScanning"`
	Displacement                float64 `json:"displacement"`
	ExpirationAfterOpeningHours float64 `json:"expirationAfterOpeningHours"`
	ExpiryOncePreparedHours     float64 `json:"expiryOncePreparedHours"`
	KitchenRecipe1              string  `json:"kitchenRecipe1"`
	KitchenRecipe2              string  `json:"kitchenRecipe2"`
	KitchenRecipe3              string  `json:"kitchenRecipe3"`
	Items                       []Item  `json:"items"`
}

// Item is a dependent container entity of a product, uniquely identified by
// ProductID across the whole catalog. Each of the three barcode slots is its
// own identifier space; empty slots participate in none of them.
type Item struct {
	ProductID          string `json:"productID"`
	Container1Barcode  string `json:"container1Barcode"`
	Container1Quantity string `json:"container1Quantity"`
	Container1Type     string `json:"container1Type"`
	Container1Volume   string `json:"container1Volume"`
	Container2Barcode  string `json:"container2Barcode"`
	Container2Quantity string `json:"container2Quantity"`
	Container2Type     string `json:"container2Type"`
	Container2Volume   string `json:"container2Volume"`
	Container3Barcode  string `json:"container3Barcode"`
	Container3Type     string `json:"container3Type"`
	Container3Volume   string `json:"container3Volume"`
}

// Manufacturer is reference data served by the interoperability backend,
// consumed as-is. The JSON keys mirror that service's payload, mixed casing
// included.
type Manufacturer struct {
	ManufacturerID          int     `json:"ManufacturerID"`
	ManufacturerName        string  `json:"ManufacturerName"`
	ManufacturerDescription string  `json:"ManufacturerDescription"`
	ManufacturerStatus      int     `json:"ManufacturerStatus"`
	CreatedBy               *string `json:"createdBy"`
	UpdatedBy               *string `json:"updatedBy"`
	CreatedAt               string  `json:"created_at"`
	UpdatedAt               string  `json:"updated_at"`
}

// FormFactorType is reference data served by the interoperability backend.
type FormFactorType struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	CategoryID int     `json:"categoryID"`
	CreatedBy  *string `json:"createdBy"`
	UpdatedBy  *string `json:"updatedBy"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// Response types

type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

type ManufacturerListResponse struct {
	Success bool           `json:"success"`
	Data    []Manufacturer `json:"data"`
}

type FormFactorTypeListResponse struct {
	Success bool             `json:"success"`
	Data    []FormFactorType `json:"data"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
