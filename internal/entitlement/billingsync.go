package entitlement

import (
	"context"

	"github.com/rs/zerolog"

	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/pkg/metrics"
)

// RemoteBillingView is the transient, display-only snapshot fetched from the
// billing provider. It is never persisted and never overrides the local
// subscription row for capacity decisions.
type RemoteBillingView struct {
	Subscribed    bool   `json:"subscribed"`
	Plan          string `json:"plan"`
	Status        string `json:"status"`
	TrialDaysLeft int    `json:"trial_days_left"`
	IsAnnual      bool   `json:"is_annual"`
}

// DefaultRemoteView is what read paths render when the provider is down.
func DefaultRemoteView() RemoteBillingView {
	return RemoteBillingView{
		Subscribed:    false,
		Plan:          string(plans.PlanFree),
		Status:        "active",
		TrialDaysLeft: 0,
		IsAnnual:      false,
	}
}

// BillingProvider is the remote billing collaborator. Implementations carry
// a bounded timeout per call.
type BillingProvider interface {
	CheckSubscription(ctx context.Context, ownerID uint) (RemoteBillingView, error)
	CreateCheckoutSession(ctx context.Context, ownerID uint, plan plans.PlanName, annual bool) (string, error)
	OpenCustomerPortal(ctx context.Context, ownerID uint) (string, error)
	CancelSubscription(ctx context.Context, ownerID uint) error
}

// Syncer mediates between callers and the billing provider, choosing
// availability over consistency on the read path: display degrades to the
// free-tier view on provider outage, while the capacity gate is unaffected
// because it never reads this value.
type Syncer struct {
	provider BillingProvider
	log      zerolog.Logger
}

func NewSyncer(provider BillingProvider, log zerolog.Logger) *Syncer {
	return &Syncer{provider: provider, log: log}
}

// FetchRemoteView never fails: any provider error (network, auth,
// provider-side) is logged and replaced with the free-tier default so the
// display layer always has a renderable value.
func (s *Syncer) FetchRemoteView(ctx context.Context, ownerID uint) RemoteBillingView {
	view, err := s.provider.CheckSubscription(ctx, ownerID)
	if err != nil {
		metrics.ProviderFallbacks.Inc()
		s.log.Warn().Err(err).Uint("owner_id", ownerID).
			Msg("billing provider unreachable, serving free-tier view")
		return DefaultRemoteView()
	}
	return view
}

// StartCheckout is an explicit user action where a silent failure would
// hide a real error, so it fails loudly.
func (s *Syncer) StartCheckout(ctx context.Context, ownerID uint, plan plans.PlanName, annual bool) (string, error) {
	url, err := s.provider.CreateCheckoutSession(ctx, ownerID, plan, annual)
	if err != nil {
		return "", &ProviderUnavailableError{Op: "checkout", Err: err}
	}
	return url, nil
}

// OpenManagementPortal fails loudly, same as StartCheckout.
func (s *Syncer) OpenManagementPortal(ctx context.Context, ownerID uint) (string, error) {
	url, err := s.provider.OpenCustomerPortal(ctx, ownerID)
	if err != nil {
		return "", &ProviderUnavailableError{Op: "portal", Err: err}
	}
	return url, nil
}
