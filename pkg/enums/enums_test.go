package enums

import "testing"

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("manager")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != UserRoleManager {
		t.Fatalf("expected manager, got %s", role)
	}

	if _, err := ParseUserRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestUserRoleIsStaff(t *testing.T) {
	staff := map[UserRole]bool{
		UserRoleGuest:   false,
		UserRoleClient:  false,
		UserRoleManager: true,
		UserRoleAdmin:   true,
	}
	for role, want := range staff {
		if got := role.IsStaff(); got != want {
			t.Fatalf("role %s IsStaff = %v, want %v", role, got, want)
		}
	}
}

func TestNormalizeProductUnit(t *testing.T) {
	cases := map[string]ProductUnit{
		"pc":       ProductUnitPiece,
		"pc.":      ProductUnitPiece,
		"pcs":      ProductUnitPiece,
		"PCS.":     ProductUnitPiece,
		" piece ":  ProductUnitPiece,
		"pack":     ProductUnitPack,
		"Pack.":    ProductUnitPack,
		"pk":       ProductUnitPack,
		"set":      ProductUnitSet,
		"carton":   ProductUnitPiece,
		"":         ProductUnitPiece,
		"unmapped": ProductUnitPiece,
	}
	for raw, want := range cases {
		if got := NormalizeProductUnit(raw); got != want {
			t.Fatalf("NormalizeProductUnit(%q) = %s, want %s", raw, got, want)
		}
	}
}
