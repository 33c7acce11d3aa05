package codebook

import "testing"

func TestCodebook_FromValue(t *testing.T) {
	mode, err := ModeTypeBook.FromValue(int(ModeTransit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != ModeTransit {
		t.Errorf("expected ModeTransit, got %v", mode)
	}

	if _, err := ModeTypeBook.FromValue(999); err == nil {
		t.Error("expected error for unknown code")
	}
}

func TestCodebook_LabelOf(t *testing.T) {
	if got := LocationTypeBook.LabelOf(int(LocationWork)); got != "WORK" {
		t.Errorf("expected WORK, got %s", got)
	}
	if got := LocationTypeBook.LabelOf(12345); got != "" {
		t.Errorf("expected empty label for unknown code, got %s", got)
	}
}

func TestCodebook_Values_DeclarationOrder(t *testing.T) {
	values := TourCategoryBook.Values()
	if len(values) != 6 {
		t.Fatalf("expected 6 tour categories, got %d", len(values))
	}
	if values[0].Label != "COMPLETE" {
		t.Errorf("expected COMPLETE first, got %s", values[0].Label)
	}
	if values[len(values)-1].Label != "SCHOOL_BASED" {
		t.Errorf("expected SCHOOL_BASED last, got %s", values[len(values)-1].Label)
	}
}

func TestIsSentinel(t *testing.T) {
	if !IsSentinel(SentinelMissing) || !IsSentinel(SentinelPNTA) || !IsSentinel(SentinelNotImputable) {
		t.Error("expected all three sentinel codes to be recognized")
	}
	if IsSentinel(int(PurposeWork)) {
		t.Error("did not expect a regular purpose code to be a sentinel")
	}
}

func TestIsSentinelPurpose(t *testing.T) {
	if !IsSentinelPurpose(PurposeMissing) {
		t.Error("expected PurposeMissing to be a sentinel purpose")
	}
	if IsSentinelPurpose(PurposeShop) {
		t.Error("did not expect PurposeShop to be a sentinel purpose")
	}
}

func TestRefine_InheritsParentValues(t *testing.T) {
	if ArriveDowBook.FieldName != "arrive_dow" {
		t.Errorf("expected refined field name arrive_dow, got %s", ArriveDowBook.FieldName)
	}
	if len(ArriveDowBook.Values()) != len(TravelDowBook.Values()) {
		t.Error("expected ArriveDowBook to carry the same values as TravelDowBook")
	}
	if ArriveDowBook.LabelOf(int(Monday)) != "MONDAY" {
		t.Error("expected refined codebook to resolve parent labels")
	}
}

func TestAgeCategory_Midpoint(t *testing.T) {
	if Age25to34.Midpoint() != 30 {
		t.Errorf("expected midpoint 30 for Age25to34, got %v", Age25to34.Midpoint())
	}
}
