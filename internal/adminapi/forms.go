package adminapi

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The form structs below are the editable buffers behind each modal. They
// are fully decoupled from the fetched lists; mapping to the wire payload
// is a pure function so it can be tested without any HTTP in sight.

// LogoUpload is an optional binary attachment on the tenant form.
type LogoUpload struct {
	Filename string
	Content  []byte
}

// TenantForm is the create/edit buffer for a tenant.
type TenantForm struct {
	Name              string
	Email             string
	ThemeColor        string
	Plan              Plan
	SubscriptionStart string
	SubscriptionEnd   string
	Status            TenantStatus
	Logo              *LogoUpload
}

// DefaultTenantForm is the empty template copied into the buffer when the
// operator opens the "add tenant" modal.
func DefaultTenantForm() TenantForm {
	return TenantForm{
		ThemeColor: "#114e9e",
		Plan:       PlanFree,
		Status:     StatusActive,
	}
}

// TenantFormFromTenant prefills the buffer from the selected entity,
// truncating any stored timestamp to its date portion.
func TenantFormFromTenant(t Tenant) TenantForm {
	f := TenantForm{
		Name:              t.Name,
		Email:             t.Email,
		ThemeColor:        t.ThemeColor,
		Plan:              t.Plan,
		SubscriptionStart: DateOnly(t.SubscriptionStart),
		SubscriptionEnd:   DateOnly(t.SubscriptionEnd),
		Status:            t.Status,
	}
	if f.ThemeColor == "" {
		f.ThemeColor = "#114e9e"
	}
	return f
}

func (f TenantForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return errors.New("email is required")
	}
	if !f.Plan.Valid() {
		return errors.New("unknown plan")
	}
	if !f.Status.Valid() {
		return errors.New("unknown status")
	}
	for _, d := range []string{f.SubscriptionStart, f.SubscriptionEnd} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return errors.New("dates must be YYYY-MM-DD")
		}
	}
	return nil
}

// tenantPayload is the JSON blob carried in the multipart "data" part.
// Empty dates travel as explicit nulls, matching what the service expects.
type tenantPayload struct {
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	ThemeColor        string       `json:"theme_color"`
	Plan              Plan         `json:"plan"`
	SubscriptionStart *string      `json:"subscription_start"`
	SubscriptionEnd   *string      `json:"subscription_end"`
	Status            TenantStatus `json:"status"`
}

func (f TenantForm) payload() tenantPayload {
	return tenantPayload{
		Name:              f.Name,
		Email:             f.Email,
		ThemeColor:        f.ThemeColor,
		Plan:              f.Plan,
		SubscriptionStart: nullableDate(f.SubscriptionStart),
		SubscriptionEnd:   nullableDate(f.SubscriptionEnd),
		Status:            f.Status,
	}
}

// MarshalData renders the "data" part of the multipart request.
func (f TenantForm) MarshalData() ([]byte, error) {
	return json.Marshal(f.payload())
}

// TenantUserForm is the create buffer on the tenant users screen.
type TenantUserForm struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

func (f TenantUserForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return errors.New("email is required")
	}
	if f.Password == "" {
		return errors.New("password is required")
	}
	if !f.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}

// SubscriptionForm is the create buffer on the subscriptions screen.
// Price is kept exactly as entered; the decimal parse below only rejects
// garbage, it never normalizes the value.
type SubscriptionForm struct {
	TenantID  string `json:"tenant_id"`
	PlanName  string `json:"plan_name"`
	Price     string `json:"price"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (f SubscriptionForm) Validate() error {
	if strings.TrimSpace(f.TenantID) == "" {
		return errors.New("tenant id is required")
	}
	if strings.TrimSpace(f.PlanName) == "" {
		return errors.New("plan name is required")
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(f.Price)); err != nil {
		return errors.New("price must be a number")
	}
	for _, d := range []string{f.StartDate, f.EndDate} {
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return errors.New("dates must be YYYY-MM-DD")
		}
	}
	return nil
}

// DateOnly truncates a stored timestamp to its calendar date. Bare dates
// pass through; anything unparseable maps to the empty string.
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
