package repositories_test

import (
	"strings"
	"testing"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
)

func TestDirectoryLookups(t *testing.T) {
	dir := repositories.DefaultDirectory()

	user, ok := dir.User("farmer-1")
	if !ok {
		t.Fatal("expected farmer-1 in seed data")
	}
	if user.Role != models.RoleFarmer {
		t.Errorf("farmer-1 role = %q, want farmer", user.Role)
	}

	if _, ok := dir.User("nobody"); ok {
		t.Error("unknown user id should report absence")
	}

	product, ok := dir.Product("prod-002")
	if !ok {
		t.Fatal("expected prod-002 in seed data")
	}
	if product.CurrentStatus != models.StatusInWarehouse {
		t.Errorf("prod-002 status = %q, want in-warehouse", product.CurrentStatus)
	}

	if _, ok := dir.Product("prod-999"); ok {
		t.Error("unknown product id should report absence")
	}
}

func TestDirectoryPredicateList(t *testing.T) {
	dir := repositories.DefaultDirectory()

	all := dir.Products(nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 seed products, got %d", len(all))
	}

	organic := dir.Products(func(p models.Product) bool { return p.OrganicCertified })
	if len(organic) != 3 {
		t.Errorf("expected every seed product organic, got %d", len(organic))
	}

	inTransit := dir.ProductsByStatus(models.StatusInTransit)
	if len(inTransit) != 1 || inTransit[0].ID != "prod-003" {
		t.Errorf("ProductsByStatus(in-transit) = %v, want [prod-003]", inTransit)
	}

	none := dir.ProductsByStatus(models.StatusSold)
	if len(none) != 0 {
		t.Errorf("expected no sold products, got %d", len(none))
	}
}

func TestDirectoryEventsForProduct(t *testing.T) {
	dir := repositories.DefaultDirectory()

	if n := len(dir.TransitEventsFor("prod-001")); n != 2 {
		t.Errorf("prod-001 transit events = %d, want 2", n)
	}
	if n := len(dir.StorageEventsFor("prod-001")); n != 1 {
		t.Errorf("prod-001 storage events = %d, want 1", n)
	}
	if n := len(dir.RetailEventsFor("prod-001")); n != 1 {
		t.Errorf("prod-001 retail events = %d, want 1", n)
	}

	// Unknown product: empty results, no error path.
	if n := len(dir.TransitEventsFor("prod-999")); n != 0 {
		t.Errorf("unknown product transit events = %d, want 0", n)
	}
}

func TestDirectoryImmutableCopies(t *testing.T) {
	dir := repositories.DefaultDirectory()

	products := dir.Products(nil)
	products[0].Name = "mutated"

	fresh, _ := dir.Product(products[0].ID)
	if fresh.Name == "mutated" {
		t.Error("Products must return copies, not aliases into the directory")
	}
}

func TestDirectoryVerifyCleanFixture(t *testing.T) {
	dir := repositories.DefaultDirectory()
	if problems := dir.Verify(); len(problems) != 0 {
		t.Errorf("embedded fixture should verify clean, got %v", problems)
	}
}

func TestDirectoryVerifyReportsDanglingReferences(t *testing.T) {
	broken := `{
		"users": [],
		"products": [
			{"id": "p1", "name": "X", "type": "Fruit", "farmerId": "ghost",
			 "farmerName": "Ghost", "harvestDate": "2023-01-01", "origin": "Nowhere",
			 "quantity": 1, "unit": "kg", "qrCode": "p1-qr", "currentStatus": "at-farm"}
		],
		"transitEvents": [
			{"id": "t1", "productId": "missing", "transporterId": "x", "transporterName": "X",
			 "pickupLocation": "A", "pickupTime": "2023-01-02T00:00:00Z",
			 "deliveryLocation": "B", "estimatedDeliveryTime": "2023-01-02T06:00:00Z",
			 "status": "delivered"}
		],
		"storageEvents": [], "retailEvents": [], "feedback": []
	}`

	dir, err := repositories.LoadDirectory(strings.NewReader(broken))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	problems := dir.Verify()
	if len(problems) < 3 {
		t.Fatalf("expected at least 3 problems (unknown farmer, unknown product, delivered without time), got %v", problems)
	}
}

func TestLoadDirectoryRejectsMalformedJSON(t *testing.T) {
	if _, err := repositories.LoadDirectory(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error for malformed fixture")
	}
}
