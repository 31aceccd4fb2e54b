package models

// TransitStatus is the lifecycle state of a transport leg.
type TransitStatus string

const (
	TransitScheduled TransitStatus = "scheduled"
	TransitInTransit TransitStatus = "in-transit"
	TransitDelivered TransitStatus = "delivered"
)

// Conditions holds the monitored environment of a product in transit or
// storage.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// QualityCheck is the inspection result recorded when a product enters a
// warehouse.
type QualityCheck struct {
	Status string `json:"status"` // "passed" or "failed"
	Notes  string `json:"notes,omitempty"`
}

// TransitEvent is one transport leg for a product. ActualDeliveryTime is
// zero until the leg is delivered.
type TransitEvent struct {
	ID                    string        `json:"id"`
	ProductID             string        `json:"productId"`
	TransporterID         string        `json:"transporterId"`
	TransporterName       string        `json:"transporterName"`
	PickupLocation        string        `json:"pickupLocation"`
	PickupTime            Timestamp     `json:"pickupTime"`
	DeliveryLocation      string        `json:"deliveryLocation"`
	EstimatedDeliveryTime Timestamp     `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    Timestamp     `json:"actualDeliveryTime,omitempty"`
	Status                TransitStatus `json:"status"`
	Conditions            *Conditions   `json:"conditions,omitempty"`
	Notes                 string        `json:"notes,omitempty"`
}

// SortTime is the single sortable instant for a transit leg: the actual
// delivery time once delivered, otherwise the pickup time. An in-transit
// leg therefore sorts by pickup even when an estimate exists.
func (e TransitEvent) SortTime() Timestamp {
	if e.Status == TransitDelivered && !e.ActualDeliveryTime.IsZero() {
		return e.ActualDeliveryTime
	}
	return e.PickupTime
}

// StorageEvent records a product's stay in a warehouse. Conditions are
// always monitored in storage, unlike transit.
type StorageEvent struct {
	ID            string        `json:"id"`
	ProductID     string        `json:"productId"`
	WarehouseID   string        `json:"warehouseId"`
	WarehouseName string        `json:"warehouseName"`
	ReceivedTime  Timestamp     `json:"receivedTime"`
	Location      string        `json:"location"`
	Conditions    Conditions    `json:"conditions"`
	QualityCheck  *QualityCheck `json:"qualityCheck,omitempty"`
	ExitTime      Timestamp     `json:"exitTime,omitempty"`
}

// SortTime returns the instant the product entered the warehouse.
func (e StorageEvent) SortTime() Timestamp { return e.ReceivedTime }

// RetailEvent records a product's arrival at (and eventual sale by) a
// retailer.
type RetailEvent struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	RetailerID   string    `json:"retailerId"`
	RetailerName string    `json:"retailerName"`
	ReceivedTime Timestamp `json:"receivedTime"`
	Location     string    `json:"location"`
	Price        float64   `json:"price"`
	SoldTime     Timestamp `json:"soldTime,omitempty"`
	ConsumerID   string    `json:"consumerId,omitempty"`
}

// SortTime returns the instant the product reached the retailer.
func (e RetailEvent) SortTime() Timestamp { return e.ReceivedTime }

// FeedbackEvent is a rating and comment left against a product. Fixture
// feedback is read-only; submitted feedback is persisted to the database
// with the same shape.
type FeedbackEvent struct {
	ID        string    `gorm:"primaryKey;size:64"     json:"id"`
	ProductID string    `gorm:"size:64;not null;index" json:"productId"`
	UserID    string    `gorm:"size:64;not null"       json:"userId"`
	UserName  string    `gorm:"size:255"               json:"userName"`
	UserRole  Role      `gorm:"size:50"                json:"userRole"`
	Rating    int       `gorm:"not null"               json:"rating"` // 1..5
	Comment   string    `gorm:"type:text"              json:"comment"`
	Timestamp Timestamp `json:"timestamp"`
}

// ProductJourney groups every recorded event for one product. It is a
// query result recomputed on demand, never stored.
type ProductJourney struct {
	Product       Product         `json:"product"`
	TransitEvents []TransitEvent  `json:"transitEvents"`
	StorageEvents []StorageEvent  `json:"storageEvents"`
	RetailEvents  []RetailEvent   `json:"retailEvents"`
	Feedback      []FeedbackEvent `json:"feedback,omitempty"`
}
