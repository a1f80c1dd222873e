package adminapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2026-03-15", "2026-03-15"},
		{"2026-03-15T10:30:00Z", "2026-03-15"},
		{"2026-03-15T10:30:00", "2026-03-15"},
		{"2026-03-15 10:30:00", "2026-03-15"},
		{"not a date", ""},
	}
	for _, tc := range cases {
		if got := DateOnly(tc.in); got != tc.want {
			t.Errorf("DateOnly(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTenantFormFromTenantTruncatesTimestamps(t *testing.T) {
	tenant := Tenant{
		Name:              "Acme",
		Email:             "acme@x.com",
		Plan:              PlanBasic,
		Status:            StatusInactive,
		SubscriptionStart: "2026-01-01T00:00:00Z",
		SubscriptionEnd:   "2026-12-31T23:59:59Z",
		CreatedAt:         time.Now(),
	}
	form := TenantFormFromTenant(tenant)
	if form.SubscriptionStart != "2026-01-01" || form.SubscriptionEnd != "2026-12-31" {
		t.Fatalf("dates not truncated: %+v", form)
	}
	if form.ThemeColor != "#114e9e" {
		t.Fatalf("missing theme color must fall back to default, got %q", form.ThemeColor)
	}
	if form.Logo != nil {
		t.Fatalf("prefill must not carry a logo buffer")
	}
}

func TestTenantFormPayloadNullsEmptyDates(t *testing.T) {
	form := DefaultTenantForm()
	form.Name = "Acme"
	form.Email = "acme@x.com"

	data, err := form.MarshalData()
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if v, present := payload["subscription_start"]; !present || v != nil {
		t.Fatalf("empty start must serialize as explicit null, got %v", v)
	}
	if v, present := payload["subscription_end"]; !present || v != nil {
		t.Fatalf("empty end must serialize as explicit null, got %v", v)
	}
	if payload["plan"] != "Free" || payload["status"] != "active" {
		t.Fatalf("defaults not applied: %v", payload)
	}
}

func TestTenantFormValidate(t *testing.T) {
	valid := DefaultTenantForm()
	valid.Name = "Acme"
	valid.Email = "acme@x.com"
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := map[string]func(*TenantForm){
		"missing name":  func(f *TenantForm) { f.Name = " " },
		"missing email": func(f *TenantForm) { f.Email = "" },
		"unknown plan":  func(f *TenantForm) { f.Plan = "Gold" },
		"bad status":    func(f *TenantForm) { f.Status = "paused" },
		"bad date":      func(f *TenantForm) { f.SubscriptionStart = "01/02/2026" },
	}
	for name, mutate := range cases {
		f := valid
		mutate(&f)
		if err := f.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestTenantUserFormValidate(t *testing.T) {
	valid := TenantUserForm{Name: "Eva", Email: "eva@x.com", Password: "pw", Role: RoleTenantAdmin}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	bad := valid
	bad.Role = "owner"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	bad = valid
	bad.Password = ""
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestSubscriptionFormValidate(t *testing.T) {
	valid := SubscriptionForm{
		TenantID:  "3",
		PlanName:  "Premium",
		Price:     "499.90",
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	bad := valid
	bad.Price = "free"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for non-numeric price")
	}
	bad = valid
	bad.TenantID = ""
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for missing tenant id")
	}
	bad = valid
	bad.EndDate = "soon"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for bad end date")
	}
}
