package models

import "time"

// Warranty statuses. New registrations always start out ACTIVE.
const (
	WarrantyStatusActive  = "ACTIVE"
	WarrantyStatusExpired = "EXPIRED"
)

// Warranty is one registered product, keyed by its serial number.
// JSON names follow the public API contract (camelCase).
type Warranty struct {
	ID                 int       `json:"id"`
	SerialNumber       string    `json:"serialNumber"`
	ProductName        string    `json:"productName"`
	CustomerName       string    `json:"customerName,omitempty"`
	CompanyName        string    `json:"companyName,omitempty"`
	MobileNumber       string    `json:"mobileNumber,omitempty"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city,omitempty"`
	State              string    `json:"state,omitempty"`
	ZipCode            string    `json:"zipCode,omitempty"`
	ProductCategory    string    `json:"productCategory,omitempty"`
	ModelNumber        string    `json:"modelNumber,omitempty"`
	Quantity           int       `json:"quantity"`
	PurchaseDate       time.Time `json:"purchaseDate"`
	ExpiryDate         time.Time `json:"expiryDate"`
	PurchaseChannel    string    `json:"purchaseChannel,omitempty"`
	ResellerName       string    `json:"resellerName,omitempty"`
	ProofOfPurchaseURL string    `json:"proofOfPurchaseUrl,omitempty"`
	RegisteredBy       string    `json:"registeredBy,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}
