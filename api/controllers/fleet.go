package controllers

import (
	"net/http"
	"strings"

	"github.com/Rushington-dev/staffshield-pro-backend/api/middleware"
	"github.com/Rushington-dev/staffshield-pro-backend/api/responses"
	"github.com/Rushington-dev/staffshield-pro-backend/api/validators"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/fleet"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

// AddFleetVehicle registers a vehicle under the calling PPO's fleet.
func AddFleetVehicle(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		var body fleet.AddVehicleInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.AddVehicle(r.Context(), middleware.UserIDFromContext(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

// ListFleetVehicles returns the calling PPO's vehicles.
func ListFleetVehicles(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		list, err := svc.ListVehicles(r.Context(), middleware.UserIDFromContext(r.Context()), pagination.FromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AssignFleetVehicle hands a vehicle to an agent for a job.
func AssignFleetVehicle(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		vehicleID, err := validators.PathUUID(chi.URLParam(r, "vehicleID"), "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body fleet.AssignInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.VehicleID = vehicleID
		body.PpoID = middleware.UserIDFromContext(r.Context())

		assignment, err := svc.AssignVehicle(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, assignment)
	}
}

// ReturnFleetVehicle closes the vehicle's open assignment.
func ReturnFleetVehicle(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		vehicleID, err := validators.PathUUID(chi.URLParam(r, "vehicleID"), "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body fleet.ReturnInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.VehicleID = vehicleID
		body.CallerID = middleware.UserIDFromContext(r.Context())

		assignment, err := svc.ReturnVehicle(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assignment)
	}
}

type vehicleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetFleetVehicleStatus moves a vehicle in or out of maintenance/retired.
func SetFleetVehicleStatus(svc fleet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fleet service unavailable"))
			return
		}

		vehicleID, err := validators.PathUUID(chi.URLParam(r, "vehicleID"), "vehicleID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body vehicleStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseVehicleStatus(strings.TrimSpace(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle status"))
			return
		}

		vehicle, err := svc.SetVehicleStatus(r.Context(), middleware.UserIDFromContext(r.Context()), vehicleID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}
