package controllers

import (
	"net/http"

	"github.com/Rushington-dev/staffshield-pro-backend/api/middleware"
	"github.com/Rushington-dev/staffshield-pro-backend/api/responses"
	"github.com/Rushington-dev/staffshield-pro-backend/api/validators"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/matching"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// MatchAgentsForJob returns ranked available agent candidates for a job.
func MatchAgentsForJob(svc matching.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "matching service unavailable"))
			return
		}

		jobID, err := validators.PathUUID(chi.URLParam(r, "jobID"), "jobID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		matches, err := svc.FindAgentsForJob(r.Context(), jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, matches)
	}
}

// MatchJobsForMe returns ranked open jobs for the calling agent.
func MatchJobsForMe(svc matching.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "matching service unavailable"))
			return
		}

		matches, err := svc.FindJobsForAgent(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, matches)
	}
}
