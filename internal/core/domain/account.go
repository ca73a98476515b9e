package domain

// Account holds the per-user search preferences kept by the account service.
type Account struct {
	UserID               string `json:"user_id"`
	Organization         string `json:"organization,omitempty"`
	NumResultsPreference int    `json:"num_results_preference"`
}
