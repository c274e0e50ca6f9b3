package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ooh-agent-backend/api/controllers"
	"github.com/angelmondragon/ooh-agent-backend/api/middleware"
	"github.com/angelmondragon/ooh-agent-backend/internal/audit"
	"github.com/angelmondragon/ooh-agent-backend/internal/inventory"
	"github.com/angelmondragon/ooh-agent-backend/internal/mockups"
	"github.com/angelmondragon/ooh-agent-backend/internal/partners"
	"github.com/angelmondragon/ooh-agent-backend/internal/pdf"
	"github.com/angelmondragon/ooh-agent-backend/internal/pricing"
	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	"github.com/angelmondragon/ooh-agent-backend/internal/seed"
	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
	"github.com/angelmondragon/ooh-agent-backend/pkg/metrics"
	"github.com/angelmondragon/ooh-agent-backend/pkg/redis"
)

// Deps carries everything the router mounts. Redis, PubSub and Seed are
// optional.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	PubSub  controllers.Pinger
	Metrics *metrics.Collector

	Inventory inventory.Service
	Partners  partners.Service
	Pricing   pricing.Service
	Proposals proposals.Service
	Mockups   mockups.Service
	PDF       pdf.Service
	Audit     audit.Service
	Seed      seed.Service
}

func (d Deps) readiness() []controllers.Dependency {
	deps := []controllers.Dependency{{Name: "database", Pinger: d.DB}}
	if d.Redis != nil {
		deps = append(deps, controllers.Dependency{Name: "redis", Pinger: d.Redis})
	}
	if d.PubSub != nil {
		deps = append(deps, controllers.Dependency{Name: "pubsub", Pinger: d.PubSub})
	}
	return deps
}

func (d Deps) idempotencyStore() redis.IdempotencyStore {
	if d.Redis == nil {
		return nil
	}
	return d.Redis
}

// AdminRoutesEnabled reports whether the seed routes are mounted: always
// outside production, and in production only behind the feature flag.
func AdminRoutesEnabled(cfg *config.Config) bool {
	return !cfg.App.IsProd() || cfg.FeatureFlags.AdminRoutes
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.CORS),
	)

	auth := middleware.Auth(cfg.JWT, cfg.FeatureFlags.AuthDisabled, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.readiness()...))
	})

	if cfg.FeatureFlags.MetricsPublic {
		r.Handle("/metrics", d.Metrics.Handler())
	} else {
		r.With(auth).Handle("/metrics", d.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.Idempotency(d.idempotencyStore(), logg))

		r.Get("/ping", controllers.Ping(middleware.ClientFromContext))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(d.Inventory, logg))
			r.Get("/available", controllers.InventoryAvailable(d.Inventory, logg))
			r.Get("/third-party", controllers.InventoryThirdParty(d.Inventory, logg))
			r.Get("/zone/{zone}", controllers.InventoryByZone(d.Inventory, logg))
			r.Get("/type/{type}", controllers.InventoryByType(d.Inventory, logg))
			r.Get("/owner/{owner}", controllers.InventoryByOwner(d.Inventory, logg))
			r.Get("/code/{code}", controllers.InventoryByCode(d.Inventory, logg))
			r.Post("/details", controllers.InventoryMultipleDetails(d.Inventory, logg))
			r.Route("/{inventoryId}", func(r chi.Router) {
				r.Get("/", controllers.InventoryGet(d.Inventory, logg))
				r.Get("/details", controllers.InventoryDetails(d.Inventory, logg))
				r.Get("/availability", controllers.InventoryAvailability(d.Inventory, logg))
				r.Get("/contact", controllers.InventoryContact(d.Partners, logg))
				r.Put("/status", controllers.InventoryUpdateStatus(d.Inventory, logg))
				r.Post("/blocked-dates", controllers.InventoryBlockDates(d.Inventory, logg))
				r.Delete("/blocked-dates", controllers.InventoryUnblockDates(d.Inventory, logg))
			})
		})

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", controllers.PartnerList(d.Partners, logg))
			r.Post("/", controllers.PartnerCreate(d.Partners, logg))
			r.Put("/emails", controllers.PartnerUpdateEmails(d.Partners, logg))
			r.Get("/name/{name}", controllers.PartnerByName(d.Partners, logg))
			r.Get("/{partnerId}", controllers.PartnerGet(d.Partners, logg))
			r.Patch("/{partnerId}", controllers.PartnerUpdate(d.Partners, logg))
			r.Delete("/{partnerId}", controllers.PartnerDelete(d.Partners, logg))
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Get("/config", controllers.PricingConfig(d.Pricing, logg))
			r.Post("/quote", controllers.PricingQuote(d.Pricing, logg))
			r.Get("/code/{code}", controllers.PricingByCode(d.Pricing, logg))
			r.Post("/proposal-total", controllers.PricingProposalTotal(d.Pricing, logg))
			r.Post("/simulate", controllers.PricingSimulate(d.Pricing, logg))
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Route("/staged", func(r chi.Router) {
				r.Post("/pending", controllers.ProposalStagePending(d.Proposals, logg))
				r.Post("/by-codes", controllers.ProposalStageByCodes(d.Proposals, logg))
				r.Post("/rich", controllers.ProposalStageRich(d.Proposals, logg))
				r.Post("/with-mockups", controllers.ProposalStageWithMockups(d.Proposals, logg))
				r.Get("/pending/latest", controllers.ProposalLatestPending(d.Proposals, logg))
				r.Get("/rich/latest", controllers.ProposalLatestRich(d.Proposals, logg))
			})
			r.Post("/complete", controllers.ProposalComplete(d.Proposals, logg))
			r.Get("/", controllers.ProposalList(d.Proposals, logg))
			r.Get("/{proposalId}", controllers.ProposalGet(d.Proposals, logg))
			r.Patch("/{proposalId}/status", controllers.ProposalUpdateStatus(d.Proposals, logg))
		})

		r.Route("/mockups", func(r chi.Router) {
			r.Get("/", controllers.MockupURL(d.Mockups, logg))
			r.Post("/batch", controllers.MockupBatch(d.Mockups, logg))
		})

		r.Route("/pdf", func(r chi.Router) {
			r.Get("/latest", controllers.PDFLatest(d.PDF, logg))
			r.Post("/render", controllers.PDFRender(d.PDF, logg))
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", controllers.AuditRecent(d.Audit, logg))
			r.Post("/", controllers.AuditLog(d.Audit, logg))
			r.Get("/type/{eventType}", controllers.AuditByEventType(d.Audit, logg))
			r.Get("/range", controllers.AuditByDateRange(d.Audit, logg))
			r.Post("/email-sent", controllers.AuditEmailSent(d.Audit, logg))
			r.Post("/proposal-generated", controllers.AuditProposalGenerated(d.Audit, logg))
			r.Post("/third-party-request", controllers.AuditThirdPartyRequest(d.Audit, logg))
		})
	})

	if AdminRoutesEnabled(cfg) && d.Seed != nil {
		r.Route("/api/admin/v1/seed", func(r chi.Router) {
			r.Use(auth)
			r.Post("/inventory", controllers.SeedInventory(d.Seed, logg))
			r.Post("/partners", controllers.SeedPartners(d.Seed, logg))
			r.Post("/all", controllers.SeedAll(d.Seed, logg))
			r.Delete("/inventory", controllers.SeedClearInventory(d.Seed, logg))
			r.Delete("/partners", controllers.SeedClearPartners(d.Seed, logg))
			r.Delete("/all", controllers.SeedClearAll(d.Seed, logg))
		})
	}

	return r
}
