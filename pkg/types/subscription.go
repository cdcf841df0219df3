package types

type SubscriptionStatus string

const (
	SubscriptionStatusActive SubscriptionStatus = "ACTIVE"
)

type SubscriptionChangeReason string

const (
	SubscriptionChangeReasonPurchase   SubscriptionChangeReason = "purchase"
	SubscriptionChangeReasonPlanChange SubscriptionChangeReason = "plan_change"
	SubscriptionChangeReasonRenewal    SubscriptionChangeReason = "renewal"
	SubscriptionChangeReasonManual     SubscriptionChangeReason = "manual"
)

// SaleStatus is Perfect Pay's sale_status_enum.
type SaleStatus int

const (
	// SaleStatusInvalid stands for a non-integral status, which no sale has.
	SaleStatusInvalid  SaleStatus = -1
	SaleStatusApproved SaleStatus = 2
)

func (s SaleStatus) Approved() bool { return s == SaleStatusApproved }
