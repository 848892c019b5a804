package stripe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/subscription"
	"gorm.io/gorm"

	"sellerhub-api/internal/domain/accounts"
	"sellerhub-api/internal/domain/plans"
	"sellerhub-api/internal/entitlement"
)

// DefaultTimeout bounds every remote call. On expiry the caller decides:
// read paths fall back, user-initiated actions surface the error.
const DefaultTimeout = 10 * time.Second

// Client is the live billing provider. It implements
// entitlement.BillingProvider on top of the Stripe API, keyed by the
// customer id stored on the local subscription row.
type Client struct {
	db      *gorm.DB
	appURL  string
	timeout time.Duration
}

func NewClient(db *gorm.DB, apiKey, appURL string) *Client {
	stripeapi.Key = apiKey
	if appURL == "" {
		appURL = "http://localhost:5173"
	}
	return &Client{db: db, appURL: appURL, timeout: DefaultTimeout}
}

func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// CheckSubscription returns the live remote view for an owner. Owners that
// never went through checkout have no Stripe customer and get the
// unsubscribed view without an error.
func (c *Client) CheckSubscription(ctx context.Context, ownerID uint) (entitlement.RemoteBillingView, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	sub, err := c.localRow(ctx, ownerID)
	if err != nil {
		return entitlement.RemoteBillingView{}, err
	}
	if sub.StripeCustomerID == nil || *sub.StripeCustomerID == "" {
		return entitlement.DefaultRemoteView(), nil
	}

	params := &stripeapi.SubscriptionListParams{Customer: stripeapi.String(*sub.StripeCustomerID)}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", "1")

	it := subscription.List(params)
	for it.Next() {
		remote := it.Subscription()
		status := NormalizeStatus(string(remote.Status))

		view := entitlement.RemoteBillingView{
			Subscribed: SubscribedStatus(status),
			Plan:       planFromSubscription(remote),
			Status:     status,
		}
		if remote.TrialEnd > 0 {
			view.TrialDaysLeft = entitlement.TrialDaysLeft(time.Unix(remote.TrialEnd, 0), time.Now())
		}
		if remote.Items != nil && len(remote.Items.Data) > 0 {
			item := remote.Items.Data[0]
			if item.Price != nil && item.Price.Recurring != nil {
				view.IsAnnual = item.Price.Recurring.Interval == stripeapi.PriceRecurringIntervalYear
			}
		}
		return view, nil
	}
	if err := it.Err(); err != nil {
		return entitlement.RemoteBillingView{}, fmt.Errorf("list stripe subscriptions: %w", err)
	}

	return entitlement.DefaultRemoteView(), nil
}

// CreateCheckoutSession starts a Stripe-hosted checkout for a paid plan and
// returns the redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, ownerID uint, plan plans.PlanName, annual bool) (string, error) {
	if plan == plans.PlanFree {
		return "", errors.New("free plan has no checkout")
	}
	priceID := priceIDFor(plan, annual)
	if priceID == "" {
		return "", fmt.Errorf("no stripe price configured for plan %s", plan)
	}

	ctx, cancel := c.bound(ctx)
	defer cancel()

	sub, err := c.localRow(ctx, ownerID)
	if err != nil {
		return "", err
	}

	customerID, err := c.ensureCustomer(ctx, sub, ownerID)
	if err != nil {
		return "", err
	}

	params := &stripeapi.CheckoutSessionParams{
		SuccessURL: stripeapi.String(c.appURL + "/account"),
		CancelURL:  stripeapi.String(c.appURL + "/account?canceled=1"),
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		Customer:   stripeapi.String(customerID),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{Price: stripeapi.String(priceID), Quantity: stripeapi.Int64(1)},
		},
		ClientReferenceID: stripeapi.String(fmt.Sprint(ownerID)),
		SubscriptionData: &stripeapi.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"account_id": fmt.Sprint(ownerID),
				"plan":       string(plan),
			},
		},
	}
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

// OpenCustomerPortal returns a Stripe billing portal URL for the owner.
func (c *Client) OpenCustomerPortal(ctx context.Context, ownerID uint) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	sub, err := c.localRow(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if sub.StripeCustomerID == nil || *sub.StripeCustomerID == "" {
		return "", errors.New("no stripe customer yet (subscribe first)")
	}

	params := &stripeapi.BillingPortalSessionParams{
		Customer:  stripeapi.String(*sub.StripeCustomerID),
		ReturnURL: stripeapi.String(c.appURL + "/account"),
	}
	params.Context = ctx

	portal, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create billing portal session: %w", err)
	}
	return portal.URL, nil
}

// CancelSubscription cancels the owner's remote subscription if one is
// recorded. Having nothing to cancel is not an error.
func (c *Client) CancelSubscription(ctx context.Context, ownerID uint) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	sub, err := c.localRow(ctx, ownerID)
	if err != nil {
		return err
	}
	if sub.StripeSubscriptionID == nil || *sub.StripeSubscriptionID == "" {
		return nil
	}

	params := &stripeapi.SubscriptionCancelParams{}
	params.Context = ctx
	if _, err := subscription.Cancel(*sub.StripeSubscriptionID, params); err != nil {
		return fmt.Errorf("cancel stripe subscription: %w", err)
	}
	return nil
}

func (c *Client) localRow(ctx context.Context, ownerID uint) (*plans.Subscription, error) {
	var sub plans.Subscription
	if err := c.db.WithContext(ctx).Where("account_id = ?", ownerID).First(&sub).Error; err != nil {
		return nil, fmt.Errorf("load subscription row for account %d: %w", ownerID, err)
	}
	return &sub, nil
}

func (c *Client) ensureCustomer(ctx context.Context, sub *plans.Subscription, ownerID uint) (string, error) {
	if sub.StripeCustomerID != nil && *sub.StripeCustomerID != "" {
		return *sub.StripeCustomerID, nil
	}

	var acct accounts.Account
	if err := c.db.WithContext(ctx).First(&acct, ownerID).Error; err != nil {
		return "", fmt.Errorf("load account %d: %w", ownerID, err)
	}

	params := &stripeapi.CustomerParams{
		Email: stripeapi.String(acct.Email),
		Metadata: map[string]string{
			"account_id": fmt.Sprint(ownerID),
			"app_env":    os.Getenv("APP_ENV"),
		},
	}
	params.Context = ctx

	cus, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}

	if err := c.db.WithContext(ctx).Model(&plans.Subscription{}).
		Where("account_id = ?", ownerID).
		Update("stripe_customer_id", cus.ID).Error; err != nil {
		return "", fmt.Errorf("store stripe customer id: %w", err)
	}
	return cus.ID, nil
}

// priceIDFor reads the Stripe price for a plan from the environment, e.g.
// STRIPE_PRICE_POPULAR / STRIPE_PRICE_POPULAR_ANNUAL.
func priceIDFor(plan plans.PlanName, annual bool) string {
	key := "STRIPE_PRICE_" + strings.ToUpper(string(plan))
	if annual {
		key += "_ANNUAL"
	}
	return os.Getenv(key)
}

func planFromSubscription(remote *stripeapi.Subscription) string {
	if remote.Metadata != nil {
		if p, err := plans.ParsePlanName(remote.Metadata["plan"]); err == nil {
			return string(p)
		}
	}
	if remote.Items != nil && len(remote.Items.Data) > 0 {
		item := remote.Items.Data[0]
		if item.Price != nil && item.Price.Nickname != "" {
			if p, err := plans.ParsePlanName(strings.ToLower(item.Price.Nickname)); err == nil {
				return string(p)
			}
		}
	}
	return string(plans.PlanFree)
}
