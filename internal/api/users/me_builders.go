package users

import (
	"context"
	"errors"
	"time"

	"sellerhub-api/internal/app/services"
	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/entitlement"
)

func BuildPlanDTO(sub *plans.Subscription) *PlanDTO {
	if sub == nil {
		return nil
	}
	return &PlanDTO{
		Name:          sub.PlanName,
		MaxSellers:    sub.MaxSellers,
		PricePerMonth: sub.PricePerMonth,
		Status:        sub.Status,
	}
}

func BuildTrialDTO(now time.Time, sub *plans.Subscription) *TrialDTO {
	if sub == nil || sub.TrialEndAt == nil {
		return nil
	}

	expired := false
	if status, err := sub.StatusValue(); err == nil {
		expired = entitlement.TrialExpired(status, sub.TrialEndAt, now)
	}

	return &TrialDTO{
		EndsAt:   sub.TrialEndAt,
		DaysLeft: entitlement.TrialDaysLeft(*sub.TrialEndAt, now),
		Expired:  expired,
	}
}

// BuildBillingDTO assembles the owner's billing block. The local plan and
// the remote view stay separate; absence of the local row is reported as
// provisioned=false rather than a free-tier guess.
func BuildBillingDTO(ctx context.Context, now time.Time, ownerID uint) (*BillingDTO, error) {
	sub, err := services.Resolver.ResolveCurrentPlan(ctx, ownerID)
	if err != nil {
		if errors.Is(err, entitlement.ErrNotProvisioned) {
			return &BillingDTO{Provisioned: false}, nil
		}
		return nil, err
	}

	dto := &BillingDTO{
		Provisioned: true,
		Plan:        BuildPlanDTO(sub),
		Trial:       BuildTrialDTO(now, sub),
	}

	if capacity, err := services.Capacity.CheckCapacity(ctx, ownerID); err == nil {
		dto.Capacity = &capacity
	}

	remote := services.Billing.FetchRemoteView(ctx, ownerID)
	dto.Remote = &remote

	return dto, nil
}

func BuildSellerDTO(ctx context.Context, sellerID uint) *SellerDTO {
	report, err := services.SalesQuota.CheckRegistrationEligibility(ctx, sellerID)
	if err != nil {
		return nil
	}
	return &SellerDTO{Eligibility: report}
}

func BuildAccountDTO(acct accounts.Account) AccountDTO {
	return AccountDTO{
		ID:    acct.ID,
		Email: acct.Email,
		Name:  acct.Name,
		Role:  acct.Role,
	}
}
