package matching

import (
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
)

// AgentMatch is one scored candidate in the "find agents for job" direction.
type AgentMatch struct {
	Agent   models.AgentProfile `json:"agent"`
	Score   float64             `json:"score"`
	Reasons []string            `json:"reasons"`
}

// JobMatch is one scored candidate in the "find jobs for agent" direction.
type JobMatch struct {
	Job     models.Job `json:"job"`
	Score   float64    `json:"score"`
	Reasons []string   `json:"reasons"`
}
