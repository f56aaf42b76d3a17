package controllers

import (
	"net/http"

	"github.com/Rushington-dev/staffshield-pro-backend/api/middleware"
	"github.com/Rushington-dev/staffshield-pro-backend/api/responses"
	"github.com/Rushington-dev/staffshield-pro-backend/api/validators"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/compliance"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// AddComplianceRecord files a verification artifact for the calling user.
func AddComplianceRecord(svc compliance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compliance service unavailable"))
			return
		}

		var body compliance.AddInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// Non-admins can only file against themselves.
		if middleware.RoleFromContext(r.Context()) != enums.UserRoleAdmin {
			body.UserID = middleware.UserIDFromContext(r.Context())
		}

		record, err := svc.Add(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// MyComplianceRecords lists the caller's compliance records.
func MyComplianceRecords(svc compliance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compliance service unavailable"))
			return
		}

		records, err := svc.ListForUser(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// UserComplianceRecords lists another user's records. Admin only via routing.
func UserComplianceRecords(svc compliance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compliance service unavailable"))
			return
		}

		userID, err := validators.PathUUID(chi.URLParam(r, "userID"), "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

type bulkComplianceRequest struct {
	Updates []compliance.StatusUpdate `json:"updates" validate:"required,min=1,dive"`
}

// ReviewComplianceRecords applies a batch of status reviews atomically.
// Admin only via routing.
func ReviewComplianceRecords(svc compliance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compliance service unavailable"))
			return
		}

		var body bulkComplianceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.BulkUpdateStatus(r.Context(), body.Updates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
