package models

// Status is the position of a product in the supply chain. The advisory
// progression is at-farm → in-transit → in-warehouse → in-transit →
// at-retailer → sold; transitions are recorded implicitly by which event
// records exist, not by a transition function.
type Status string

const (
	StatusAtFarm      Status = "at-farm"
	StatusInTransit   Status = "in-transit"
	StatusInWarehouse Status = "in-warehouse"
	StatusAtRetailer  Status = "at-retailer"
	StatusSold        Status = "sold"
)

// Statuses lists every product status in chain order.
func Statuses() []Status {
	return []Status{StatusAtFarm, StatusInTransit, StatusInWarehouse, StatusAtRetailer, StatusSold}
}

// Valid reports whether s is a recognised status.
func (s Status) Valid() bool {
	switch s {
	case StatusAtFarm, StatusInTransit, StatusInWarehouse, StatusAtRetailer, StatusSold:
		return true
	}
	return false
}

// Product is a traceable batch of produce originating at one farm.
// Products are immutable reference data seeded from the fixture directory.
//
// CurrentStatus is independent source-of-truth data, not derived from the
// event history; the drift auditor reports (but never corrects)
// disagreement between the two.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Variety          string    `json:"variety,omitempty"`
	FarmerID         string    `json:"farmerId"`
	FarmerName       string    `json:"farmerName"`
	HarvestDate      Timestamp `json:"harvestDate"`
	Origin           string    `json:"origin"`
	Quantity         float64   `json:"quantity"`
	Unit             string    `json:"unit"`
	QualityGrade     string    `json:"qualityGrade,omitempty"`
	OrganicCertified bool      `json:"organicCertified"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	QRCode           string    `json:"qrCode"`
	CurrentStatus    Status    `json:"currentStatus"`
	CurrentLocation  string    `json:"currentLocation,omitempty"`
	Price            float64   `json:"price,omitempty"`
}
