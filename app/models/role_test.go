package models_test

import (
	"testing"

	"github.com/tracechain/tracechain/app/models"
)

func TestLandingPath(t *testing.T) {
	cases := []struct {
		role models.Role
		want string
	}{
		{models.RoleFarmer, "/farmer"},
		{models.RoleTransporter, "/transporter"},
		{models.RoleWarehouse, "/warehouse"},
		{models.RoleRetailer, "/profile"},
		{models.RoleConsumer, "/consumer"},
		{models.RoleAdmin, "/profile"},
		{models.Role("intern"), "/profile"},
	}

	for _, tc := range cases {
		if got := tc.role.LandingPath(); got != tc.want {
			t.Errorf("LandingPath(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range models.Roles() {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if models.Role("pilot").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range models.Statuses() {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if models.Status("lost").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestTimestampParsing(t *testing.T) {
	date := models.MustTimestamp("2023-09-15")
	if date.IsZero() {
		t.Fatal("date-only value should parse")
	}
	instant := models.MustTimestamp("2023-09-16T14:15:00Z")
	if !date.Before(instant.Time) {
		t.Error("harvest date should order before event instants")
	}
	if _, err := models.ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unrecognised layout")
	}
}
