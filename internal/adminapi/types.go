// Package adminapi is the typed client for the remote admin REST API.
// The console holds no data of its own: every entity below is owned by the
// remote service and re-fetched per screen visit, so fields map the wire
// shape verbatim.
package adminapi

import (
	"time"

	"github.com/shopspring/decimal"

	"automan.solutions/console/internal/session"
)

// Plan is the closed set of tenant plans offered by the platform.
type Plan string

const (
	PlanFree    Plan = "Free"
	PlanBasic   Plan = "Basic"
	PlanPremium Plan = "Premium"
)

// Plans lists the valid plans in display order.
func Plans() []Plan { return []Plan{PlanFree, PlanBasic, PlanPremium} }

func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPremium:
		return true
	}
	return false
}

// TenantStatus is the closed set of tenant lifecycle states.
type TenantStatus string

const (
	StatusActive   TenantStatus = "active"
	StatusInactive TenantStatus = "inactive"
)

func Statuses() []TenantStatus { return []TenantStatus{StatusActive, StatusInactive} }

func (s TenantStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// UserRole distinguishes tenant staff from tenant-level administrators.
type UserRole string

const (
	RoleTenantStaff UserRole = "tenant_staff"
	RoleTenantAdmin UserRole = "tenant_admin"
)

func Roles() []UserRole { return []UserRole{RoleTenantStaff, RoleTenantAdmin} }

func (r UserRole) Valid() bool {
	return r == RoleTenantStaff || r == RoleTenantAdmin
}

// Tenant is a customer organization provisioned on the platform.
// Subscription dates stay strings on this side: the service may return a
// bare date or a full timestamp, and the console only ever truncates them
// for display and edit prefill.
type Tenant struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	ThemeColor        string       `json:"theme_color"`
	Plan              Plan         `json:"plan"`
	Status            TenantStatus `json:"status"`
	SubscriptionStart string       `json:"subscription_start,omitempty"`
	SubscriptionEnd   string       `json:"subscription_end,omitempty"`
	LogoURL           string       `json:"logo,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

// TenantUser is an account scoped to exactly one tenant.
type TenantUser struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription links a tenant to a billed plan over a date range.
type Subscription struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	PlanName  string          `json:"plan_name"`
	Price     decimal.Decimal `json:"price"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	IsActive  bool            `json:"is_active"`
}

// ActivityLog is a read-only platform event shown on the dashboard.
type ActivityLog struct {
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// DashboardSummary aggregates the landing-screen counters and recent logs.
type DashboardSummary struct {
	Tenants       int           `json:"tenants"`
	Users         int           `json:"users"`
	Subscriptions int           `json:"subscriptions"`
	Logs          []ActivityLog `json:"logs"`
}

// LoginResult is the payload of a successful POST /login.
type LoginResult struct {
	Token string           `json:"token"`
	Admin session.Identity `json:"admin"`
}
