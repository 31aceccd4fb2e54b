package repositories

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/database/fixtures"
	"github.com/tracechain/tracechain/pkg/collection"
)

// Directory is the read-only store of seed entities every dashboard
// queries. It is populated once from a fixture file and never mutates,
// so lookups are safe from any goroutine without locking. Absence is
// reported with a comma-ok bool, never an error: asking for an unknown
// id is a normal outcome of user-driven navigation.
type Directory struct {
	users    []models.User
	products []models.Product
	transit  []models.TransitEvent
	storage  []models.StorageEvent
	retail   []models.RetailEvent
	feedback []models.FeedbackEvent
}

// fixtureFile is the on-disk shape of a directory fixture.
type fixtureFile struct {
	Users         []models.User          `json:"users"`
	Products      []models.Product       `json:"products"`
	TransitEvents []models.TransitEvent  `json:"transitEvents"`
	StorageEvents []models.StorageEvent  `json:"storageEvents"`
	RetailEvents  []models.RetailEvent   `json:"retailEvents"`
	Feedback      []models.FeedbackEvent `json:"feedback"`
}

// LoadDirectory reads a fixture from r.
func LoadDirectory(r io.Reader) (*Directory, error) {
	var f fixtureFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("directory: decode fixture: %w", err)
	}
	return &Directory{
		users:    f.Users,
		products: f.Products,
		transit:  f.TransitEvents,
		storage:  f.StorageEvents,
		retail:   f.RetailEvents,
		feedback: f.Feedback,
	}, nil
}

// LoadDirectoryFile reads a fixture from path.
func LoadDirectoryFile(path string) (*Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("directory: open fixture: %w", err)
	}
	defer file.Close()
	return LoadDirectory(file)
}

// DefaultDirectory loads the embedded seed data. It panics on failure:
// a broken built-in fixture is a build defect, not a runtime condition.
func DefaultDirectory() *Directory {
	var f fixtureFile
	if err := json.Unmarshal(fixtures.Raw(), &f); err != nil {
		panic(fmt.Sprintf("directory: embedded fixture: %v", err))
	}
	return &Directory{
		users:    f.Users,
		products: f.Products,
		transit:  f.TransitEvents,
		storage:  f.StorageEvents,
		retail:   f.RetailEvents,
		feedback: f.Feedback,
	}
}

// User looks up a seed user by id.
func (d *Directory) User(id string) (models.User, bool) {
	return collection.First(d.users, func(u models.User) bool { return u.ID == id })
}

// UserByEmail looks up a seed user by email.
func (d *Directory) UserByEmail(email string) (models.User, bool) {
	return collection.First(d.users, func(u models.User) bool { return u.Email == email })
}

// Users returns a copy of every seed user.
func (d *Directory) Users() []models.User {
	return append([]models.User(nil), d.users...)
}

// Product looks up a product by id.
func (d *Directory) Product(id string) (models.Product, bool) {
	return collection.First(d.products, func(p models.Product) bool { return p.ID == id })
}

// Products returns the products matching pred, in fixture order. A nil
// predicate matches everything.
func (d *Directory) Products(pred func(models.Product) bool) []models.Product {
	if pred == nil {
		return append([]models.Product(nil), d.products...)
	}
	return collection.Filter(d.products, pred)
}

// ProductsByStatus returns the products whose CurrentStatus equals status.
func (d *Directory) ProductsByStatus(status models.Status) []models.Product {
	return d.Products(func(p models.Product) bool { return p.CurrentStatus == status })
}

// ProductsByFarmer returns the products originating with one farmer.
func (d *Directory) ProductsByFarmer(farmerID string) []models.Product {
	return d.Products(func(p models.Product) bool { return p.FarmerID == farmerID })
}

// TransitEventsFor returns the transport legs recorded for a product.
func (d *Directory) TransitEventsFor(productID string) []models.TransitEvent {
	return collection.Filter(d.transit, func(e models.TransitEvent) bool { return e.ProductID == productID })
}

// StorageEventsFor returns the warehouse stays recorded for a product.
func (d *Directory) StorageEventsFor(productID string) []models.StorageEvent {
	return collection.Filter(d.storage, func(e models.StorageEvent) bool { return e.ProductID == productID })
}

// RetailEventsFor returns the retail arrivals recorded for a product.
func (d *Directory) RetailEventsFor(productID string) []models.RetailEvent {
	return collection.Filter(d.retail, func(e models.RetailEvent) bool { return e.ProductID == productID })
}

// FeedbackFor returns the seed feedback left against a product.
func (d *Directory) FeedbackFor(productID string) []models.FeedbackEvent {
	return collection.Filter(d.feedback, func(e models.FeedbackEvent) bool { return e.ProductID == productID })
}

// FeedbackByUser returns the seed feedback one user has left.
func (d *Directory) FeedbackByUser(userID string) []models.FeedbackEvent {
	return collection.Filter(d.feedback, func(e models.FeedbackEvent) bool { return e.UserID == userID })
}

// AllTransitEvents returns a copy of every transport leg.
func (d *Directory) AllTransitEvents() []models.TransitEvent {
	return append([]models.TransitEvent(nil), d.transit...)
}

// AllStorageEvents returns a copy of every warehouse stay.
func (d *Directory) AllStorageEvents() []models.StorageEvent {
	return append([]models.StorageEvent(nil), d.storage...)
}

// TransitEventsByTransporter returns the legs assigned to one transporter.
func (d *Directory) TransitEventsByTransporter(transporterID string) []models.TransitEvent {
	return collection.Filter(d.transit, func(e models.TransitEvent) bool { return e.TransporterID == transporterID })
}

// StorageEventsByWarehouse returns the stays recorded by one warehouse.
func (d *Directory) StorageEventsByWarehouse(warehouseID string) []models.StorageEvent {
	return collection.Filter(d.storage, func(e models.StorageEvent) bool { return e.WarehouseID == warehouseID })
}

// RetailEventsByRetailer returns the arrivals recorded by one retailer.
func (d *Directory) RetailEventsByRetailer(retailerID string) []models.RetailEvent {
	return collection.Filter(d.retail, func(e models.RetailEvent) bool { return e.RetailerID == retailerID })
}

// Verify checks the referential integrity of the loaded fixture: every
// event must reference a known product, every product a known farmer, and
// enum fields must carry recognised values. It returns one message per
// problem found.
func (d *Directory) Verify() []string {
	var problems []string
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	for _, u := range d.users {
		if !u.Role.Valid() {
			report("user %s: unknown role %q", u.ID, u.Role)
		}
	}
	for _, p := range d.products {
		if _, ok := d.User(p.FarmerID); !ok {
			report("product %s: unknown farmer %q", p.ID, p.FarmerID)
		}
		if !p.CurrentStatus.Valid() {
			report("product %s: unknown status %q", p.ID, p.CurrentStatus)
		}
		if p.HarvestDate.IsZero() {
			report("product %s: missing harvest date", p.ID)
		}
	}
	for _, e := range d.transit {
		if _, ok := d.Product(e.ProductID); !ok {
			report("transit event %s: unknown product %q", e.ID, e.ProductID)
		}
		if e.Status == models.TransitDelivered && e.ActualDeliveryTime.IsZero() {
			report("transit event %s: delivered without an actual delivery time", e.ID)
		}
	}
	for _, e := range d.storage {
		if _, ok := d.Product(e.ProductID); !ok {
			report("storage event %s: unknown product %q", e.ID, e.ProductID)
		}
	}
	for _, e := range d.retail {
		if _, ok := d.Product(e.ProductID); !ok {
			report("retail event %s: unknown product %q", e.ID, e.ProductID)
		}
	}
	for _, e := range d.feedback {
		if _, ok := d.Product(e.ProductID); !ok {
			report("feedback %s: unknown product %q", e.ID, e.ProductID)
		}
		if e.Rating < 1 || e.Rating > 5 {
			report("feedback %s: rating %d outside 1..5", e.ID, e.Rating)
		}
	}
	return problems
}
