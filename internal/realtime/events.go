package realtime

import (
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
)

// EventType names the realtime notifications the backend emits.
type EventType string

const (
	EventJobStatusUpdate     EventType = "job_status_update"
	EventNewMessage          EventType = "new_message"
	EventVehicleStatusUpdate EventType = "vehicle_status_update"
)

// Event is the envelope published to the realtime channel. Room conventions:
// "job:<id>" for job watchers, "user:<id>" for direct notifications.
type Event struct {
	Type    EventType `json:"type"`
	Room    string    `json:"room"`
	Payload any       `json:"payload"`
}

// JobStatusPayload notifies watchers of a job transition.
type JobStatusPayload struct {
	JobID     uuid.UUID       `json:"job_id"`
	NewStatus enums.JobStatus `json:"new_status"`
}

// NewMessagePayload notifies the recipient of an incoming message.
type NewMessagePayload struct {
	MessageID   uuid.UUID  `json:"message_id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	JobID       *uuid.UUID `json:"job_id,omitempty"`
}

// VehicleStatusPayload notifies fleet watchers of a vehicle transition.
type VehicleStatusPayload struct {
	VehicleID uuid.UUID           `json:"vehicle_id"`
	NewStatus enums.VehicleStatus `json:"new_status"`
}

func JobRoom(jobID uuid.UUID) string         { return "job:" + jobID.String() }
func UserRoom(userID uuid.UUID) string       { return "user:" + userID.String() }
func VehicleRoom(vehicleID uuid.UUID) string { return "fleet:" + vehicleID.String() }
