package matching

import (
	"math"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	baseScore          = 100.0
	highMatchThreshold = 150.0
	earthRadiusKm      = 6371.0
)

// Score carries the computed compatibility total and its reason tags.
type Score struct {
	Total   float64
	Reasons []string
}

// ScoreAgentForJob rates a candidate agent against a job (the "find agents
// for job" direction). Pure function: no state is read or written beyond the
// two inputs.
func ScoreAgentForJob(job *models.Job, agent *models.AgentProfile) Score {
	distance, hasDistance := distanceKm(job.Location, agent.Location)

	total := baseScore
	total += distanceComponent(distance, hasDistance)
	total += agentRateComponent(job.HourlyRate, agent.HourlyRate)

	certMatch := certificationsOverlap(job.RequiredCertifications, agent.Certifications)
	total += certificationComponent(job.RequiredCertifications, certMatch)
	total += urgencyComponent(job.Urgency)
	total += experienceComponent(agent.ExperienceYears)

	return Score{
		Total:   total,
		Reasons: buildReasons(total, distance, hasDistance, certMatch, job, agent),
	}
}

// ScoreJobForAgent rates a candidate job against an agent (the "find jobs for
// agent" direction). The rate thresholds intentionally differ from the
// inverse direction.
func ScoreJobForAgent(agent *models.AgentProfile, job *models.Job) Score {
	distance, hasDistance := distanceKm(job.Location, agent.Location)

	total := baseScore
	total += distanceComponent(distance, hasDistance)
	total += jobRateComponent(job.HourlyRate, agent.HourlyRate)

	certMatch := certificationsOverlap(job.RequiredCertifications, agent.Certifications)
	total += certificationComponent(job.RequiredCertifications, certMatch)
	total += ratingComponent(agent.Rating)
	total += availabilityComponent(agent.AvailabilityStatus)
	total += experienceComponent(agent.ExperienceYears)

	return Score{
		Total:   total,
		Reasons: buildReasons(total, distance, hasDistance, certMatch, job, agent),
	}
}

func distanceComponent(distance float64, hasDistance bool) float64 {
	if !hasDistance {
		return 0
	}
	return math.Max(0, 50-math.Min(50, distance))
}

// agentRateComponent compares the agent's asking rate against the job's
// offered rate: the cheaper the agent relative to the budget, the higher the
// contribution.
func agentRateComponent(jobRate, agentRate decimal.Decimal) float64 {
	switch {
	case agentRate.LessThanOrEqual(jobRate):
		return 30
	case agentRate.LessThanOrEqual(jobRate.Mul(decimal.NewFromFloat(1.2))):
		return 20
	case agentRate.LessThanOrEqual(jobRate.Mul(decimal.NewFromFloat(1.5))):
		return 10
	default:
		return 0
	}
}

// jobRateComponent is the agent-side view: how well the job's pay covers the
// agent's asking rate. Not a literal mirror of agentRateComponent.
func jobRateComponent(jobRate, agentRate decimal.Decimal) float64 {
	switch {
	case jobRate.GreaterThanOrEqual(agentRate):
		return 30
	case jobRate.GreaterThanOrEqual(agentRate.Mul(decimal.NewFromFloat(0.8))):
		return 20
	case jobRate.GreaterThanOrEqual(agentRate.Mul(decimal.NewFromFloat(0.6))):
		return 10
	default:
		return 0
	}
}

func certificationComponent(required []string, overlap bool) float64 {
	if len(required) == 0 {
		return 20
	}
	if overlap {
		return 40
	}
	return 0
}

func urgencyComponent(urgency enums.JobUrgency) float64 {
	switch urgency {
	case enums.JobUrgencyUrgent:
		return 20
	case enums.JobUrgencyHigh:
		return 15
	case enums.JobUrgencyNormal:
		return 10
	case enums.JobUrgencyLow:
		return 5
	default:
		return 0
	}
}

func experienceComponent(years int) float64 {
	switch {
	case years >= 5:
		return 15
	case years >= 2:
		return 10
	case years >= 1:
		return 5
	default:
		return 0
	}
}

func ratingComponent(rating decimal.Decimal) float64 {
	switch {
	case rating.GreaterThanOrEqual(decimal.NewFromFloat(4.5)):
		return 20
	case rating.GreaterThanOrEqual(decimal.NewFromFloat(4.0)):
		return 15
	case rating.GreaterThanOrEqual(decimal.NewFromFloat(3.5)):
		return 10
	default:
		return 0
	}
}

func availabilityComponent(status enums.AvailabilityStatus) float64 {
	switch status {
	case enums.AvailabilityStatusAvailable:
		return 20
	case enums.AvailabilityStatusBusy:
		return 5
	default:
		return 0
	}
}

func buildReasons(total, distance float64, hasDistance, certMatch bool, job *models.Job, agent *models.AgentProfile) []string {
	reasons := []string{}
	if total >= highMatchThreshold {
		reasons = append(reasons, "High overall match")
	}
	if hasDistance {
		if distance <= 10 {
			reasons = append(reasons, "Very close location")
		} else if distance <= 25 {
			reasons = append(reasons, "Close location")
		}
	}
	if certMatch {
		reasons = append(reasons, "Certification match")
	}
	if job.Urgency == enums.JobUrgencyUrgent {
		reasons = append(reasons, "Urgent job")
	}
	if agent.Rating.GreaterThanOrEqual(decimal.NewFromFloat(4.5)) {
		reasons = append(reasons, "Top rated")
	}
	if agent.ExperienceYears >= 5 {
		reasons = append(reasons, "Highly experienced")
	}
	return reasons
}

func certificationsOverlap(required, held []string) bool {
	if len(required) == 0 || len(held) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(held))
	for _, cert := range held {
		set[cert] = struct{}{}
	}
	for _, cert := range required {
		if _, ok := set[cert]; ok {
			return true
		}
	}
	return false
}

// distanceKm returns the great-circle distance between the two points using
// the haversine formula. The second return is false when either point is
// absent.
func distanceKm(a, b *types.GeographyPoint) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return haversine(a.Lat, a.Lng, b.Lat, b.Lng), true
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
