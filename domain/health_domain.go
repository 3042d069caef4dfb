package domain

import (
	"errors"
)

var (
	MessageSuccessHealth = "Plant health analyzed successfully"
	MessageFailedHealth  = "failed to process plant health analysis result"

	ErrMissingImageURL = errors.New("no image URL provided")
)

type (
	HealthAnalysisRequest struct {
		ImageURL  string `json:"imageUrl" form:"imageUrl" validate:"required"`
		PlantName string `json:"plantName" form:"plantName"`
		PlantType string `json:"plantType" form:"plantType"`
	}

	HealthIssue struct {
		Issue       string   `json:"issue"`
		Description string   `json:"description"`
		Severity    string   `json:"severity"` // "Mild", "Moderate", "Severe"
		Causes      []string `json:"causes"`
	}

	GeneralCare struct {
		Watering string `json:"watering"`
		Light    string `json:"light"`
		Soil     string `json:"soil"`
	}

	HealthReport struct {
		HealthStatus    string        `json:"healthStatus"` // "Healthy", "Needs attention", "Unhealthy"
		Summary         string        `json:"summary"`
		Observations    []string      `json:"observations"`
		Issues          []HealthIssue `json:"issues"`
		Recommendations []string      `json:"recommendations"`
		GeneralCare     GeneralCare   `json:"generalCare"`
	}
)
