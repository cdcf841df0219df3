package types

const (
	DefaultDaringLevel = 5
	DefaultPartnerName = "Meu Amor"
)

// UserSnapshot is the user view handed to the dashboard on login, validate and the /auth redirect.
type UserSnapshot struct {
	ID                    string   `json:"id" validate:"required"`
	Email                 string   `json:"email" validate:"required"`
	Name                  string   `json:"name" validate:"required"`
	Plan                  PlanType `json:"plan"`
	HasActiveSubscription bool     `json:"hasActiveSubscription"`
	DarinessLevel         int      `json:"darinessLevel"`
	PartnerName           string   `json:"partnerName"`
}

// HasAccess reports whether the snapshot's plan satisfies required.
// An empty requirement only needs an active subscription.
func (u *UserSnapshot) HasAccess(required PlanType) bool {
	if u == nil || !u.HasActiveSubscription {
		return false
	}
	if required == "" {
		return true
	}
	return u.Plan.Rank() >= required.Rank()
}
