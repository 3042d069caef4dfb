package domain

var (
	MessageSuccessIdentify = "Plant identified successfully"
	MessageFailedIdentify  = "failed to process plant identification result"
)

type (
	IdentifiedPlant struct {
		ID             int     `json:"id"`
		Name           string  `json:"name"`
		ScientificName string  `json:"scientific_name"`
		Family         string  `json:"family,omitempty"`
		Confidence     float64 `json:"confidence"`
	}

	IdentifyResponse struct {
		IdentifiedPlant IdentifiedPlant   `json:"identifiedPlant"`
		Alternatives    []IdentifiedPlant `json:"alternatives"`
		Notes           string            `json:"notes"`
	}
)
