package types

type PlanType string

const (
	PlanTypeFree    PlanType = "free"
	PlanTypeBasico  PlanType = "basico"
	PlanTypeMedio   PlanType = "medio"
	PlanTypePremium PlanType = "premium"
)

var planRanks = map[PlanType]int{
	PlanTypeBasico:  1,
	PlanTypeMedio:   2,
	PlanTypePremium: 3,
}

// Rank orders paid plans: basico < medio < premium. Unknown and free plans rank 0.
func (p PlanType) Rank() int {
	return planRanks[p]
}

// Paid reports whether p is one of the purchasable plans.
func (p PlanType) Paid() bool {
	_, ok := planRanks[p]
	return ok
}

// DefaultDaringLevel is the profile daring level assigned when a webhook creates the user.
func (p PlanType) DefaultDaringLevel() int {
	switch p {
	case PlanTypeBasico:
		return 3
	case PlanTypeMedio:
		return 5
	default:
		return 7
	}
}

// Plan maps a Perfect Pay plan code to an internal plan.
type Plan struct {
	Code string   `json:"code" mapstructure:"code"`
	Type PlanType `json:"type" mapstructure:"type"`
	Name string   `json:"name" mapstructure:"name"`
	// DaringLevel overrides Type.DefaultDaringLevel when set.
	DaringLevel int `json:"daring_level" mapstructure:"daring_level"`
}

func (p *Plan) InitialDaringLevel() int {
	if p.DaringLevel > 0 {
		return p.DaringLevel
	}
	return p.Type.DefaultDaringLevel()
}

func DefaultPlans() []*Plan {
	return []*Plan{
		{Code: "PPU38CPQ6NQ", Type: PlanTypeBasico, Name: "Plano Básico"},
		{Code: "PPU38CPQ73K", Type: PlanTypeMedio, Name: "Plano Médio"},
		{Code: "PPU38CPQ742", Type: PlanTypePremium, Name: "Plano Premium"},
	}
}
