package plans

import "fmt"

// PlanName is the closed set of sellable plans. Anything else is a defect,
// not a valid state; always go through ParsePlanName at input boundaries.
type PlanName string

const (
	PlanFree         PlanName = "free"
	PlanPopular      PlanName = "popular"
	PlanCrescimento  PlanName = "crescimento"
	PlanProfissional PlanName = "profissional"
)

func ParsePlanName(s string) (PlanName, error) {
	switch PlanName(s) {
	case PlanFree, PlanPopular, PlanCrescimento, PlanProfissional:
		return PlanName(s), nil
	}
	return "", fmt.Errorf("unknown plan name %q", s)
}

// UnlimitedSellers is the MaxSellers sentinel for plans without a seat cap.
const UnlimitedSellers = -1

// Spec holds the commercial parameters of a plan tier.
type Spec struct {
	MaxSellers    int
	PricePerMonth float64
}

// Catalog is the single source of truth for tier limits and pricing.
var Catalog = map[PlanName]Spec{
	PlanFree:         {MaxSellers: 1, PricePerMonth: 0},
	PlanPopular:      {MaxSellers: 5, PricePerMonth: 49.90},
	PlanCrescimento:  {MaxSellers: 15, PricePerMonth: 99.90},
	PlanProfissional: {MaxSellers: UnlimitedSellers, PricePerMonth: 199.90},
}

func SpecFor(name PlanName) Spec {
	return Catalog[name]
}
