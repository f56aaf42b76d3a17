package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rushington-dev/staffshield-pro-backend/api/controllers"
	webhookcontrollers "github.com/Rushington-dev/staffshield-pro-backend/api/controllers/webhooks"
	"github.com/Rushington-dev/staffshield-pro-backend/api/middleware"
	authsvc "github.com/Rushington-dev/staffshield-pro-backend/internal/auth"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/compliance"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/fleet"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/jobs"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/matching"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/messaging"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/payments"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/users"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/config"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/square"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry

	Auth       authsvc.Service
	Users      users.Service
	Jobs       jobs.Service
	Matching   matching.Service
	Fleet      fleet.Service
	Compliance compliance.Service
	Messaging  messaging.Service
	Payments   payments.Service

	SquareClient  *square.Client
	SquareWebhook webhookcontrollers.SquareWebhookService
	WebhookURL    string
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		var verifier interface {
			VerifySignature(notificationURL string, body []byte, signature string) bool
		}
		if d.SquareClient != nil {
			verifier = d.SquareClient
		}
		r.Post("/square", webhookcontrollers.SquareWebhook(d.SquareWebhook, verifier, d.WebhookURL, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.MyProfile(d.Users, logg))
			r.Delete("/", controllers.DeactivateMe(d.Users, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleAgent)).
				Put("/agent-profile", controllers.UpdateMyAgentProfile(d.Users, logg))
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", controllers.ListJobs(d.Jobs, logg))
			r.Get("/{jobID}", controllers.GetJob(d.Jobs, logg))

			r.With(middleware.RequireRole(logg, enums.UserRoleClient)).Group(func(r chi.Router) {
				r.Post("/", controllers.CreateJob(d.Jobs, logg))
				r.Post("/{jobID}/assign-ppo", controllers.AssignJobPPO(d.Jobs, logg))
			})

			r.With(middleware.RequireRole(logg, enums.UserRolePPO)).Group(func(r chi.Router) {
				r.Post("/{jobID}/assign-agents", controllers.AssignJobAgents(d.Jobs, logg))
				r.Get("/{jobID}/matches", controllers.MatchAgentsForJob(d.Matching, logg))
			})

			r.With(middleware.RequireRole(logg, enums.UserRoleAgent)).Group(func(r chi.Router) {
				r.Post("/{jobID}/respond", controllers.RespondToAssignment(d.Jobs, logg))
				r.Post("/{jobID}/interest", controllers.ExpressJobInterest(d.Jobs, logg))
			})

			r.With(middleware.RequireRole(logg, enums.UserRoleClient, enums.UserRolePPO)).
				Patch("/{jobID}/status", controllers.UpdateJobStatus(d.Jobs, logg))
		})

		r.With(middleware.RequireRole(logg, enums.UserRoleAgent)).
			Get("/matches", controllers.MatchJobsForMe(d.Matching, logg))

		r.Route("/fleet", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRolePPO))
			r.Get("/", controllers.ListFleetVehicles(d.Fleet, logg))
			r.Post("/", controllers.AddFleetVehicle(d.Fleet, logg))
			r.Post("/{vehicleID}/assign", controllers.AssignFleetVehicle(d.Fleet, logg))
			r.Patch("/{vehicleID}/status", controllers.SetFleetVehicleStatus(d.Fleet, logg))
		})
		// Agents holding the vehicle can return it too.
		r.With(middleware.RequireRole(logg, enums.UserRolePPO, enums.UserRoleAgent)).
			Post("/fleet/{vehicleID}/return", controllers.ReturnFleetVehicle(d.Fleet, logg))

		r.Route("/compliance", func(r chi.Router) {
			r.Get("/me", controllers.MyComplianceRecords(d.Compliance, logg))
			r.Post("/", controllers.AddComplianceRecord(d.Compliance, logg))
			r.With(middleware.RequireRole(logg)).Group(func(r chi.Router) {
				r.Get("/users/{userID}", controllers.UserComplianceRecords(d.Compliance, logg))
				r.Post("/review", controllers.ReviewComplianceRecords(d.Compliance, logg))
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", controllers.SendMessage(d.Messaging, logg))
			r.Get("/conversations", controllers.ListConversations(d.Messaging, logg))
			r.Get("/search", controllers.SearchMessages(d.Messaging, logg))
			r.Get("/threads/{counterpartID}", controllers.ListThread(d.Messaging, logg))
			r.Post("/threads/{counterpartID}/read", controllers.MarkThreadRead(d.Messaging, logg))
			r.Delete("/{messageID}", controllers.DeleteMessage(d.Messaging, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleClient))
			r.Post("/escrow", controllers.CreateEscrow(d.Payments, logg))
			r.Get("/escrow/{jobID}", controllers.GetEscrow(d.Payments, logg))
			r.Post("/escrow/{jobID}/release", controllers.ReleaseEscrow(d.Payments, logg))
			r.Post("/escrow/{jobID}/refund", controllers.RefundEscrow(d.Payments, logg))
		})
	})

	return r
}
