package services

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"sellerhub-api/config"
	"sellerhub-api/internal/entitlement"
	stripeinfra "sellerhub-api/internal/infra/stripe"
	"sellerhub-api/internal/notify"
)

// Engine singletons wired once at startup, same lifecycle as database.DB.
var (
	Log zerolog.Logger

	Resolver   *entitlement.Resolver
	Capacity   *entitlement.CapacityGuard
	SalesQuota *entitlement.SalesQuotaGuard
	Billing    *entitlement.Syncer
	Upgrades   *entitlement.Coordinator
	Reconciler *entitlement.Reconciler
	Notifier   notify.Notifier
)

func Init(db *gorm.DB, log zerolog.Logger) {
	Log = log

	provider := stripeinfra.NewClient(db, config.STRIPE_SECRET_KEY, config.APP_URL)

	Resolver = entitlement.NewResolver(db)
	Capacity = entitlement.NewCapacityGuard(db, Resolver)
	SalesQuota = entitlement.NewSalesQuotaGuard(db)
	Billing = entitlement.NewSyncer(provider, log)
	Upgrades = entitlement.NewCoordinator(db, Resolver, provider, log)
	Reconciler = entitlement.NewReconciler(db, log)
	Notifier = notify.NewLogNotifier(log)
}
