package store

// Record is the durable mirror of the console session.
type Record struct {
	SelectedBaseURL   string `json:"selected_base_url"`
	Token             string `json:"token"`
	TokenOwnerBaseURL string `json:"token_owner_base_url"`
}

// Store is the persisted session interface. There is one logical session per
// store and writers overwrite each other (last writer wins).
type Store interface {
	// Load returns the persisted record. A store with no prior data yields an
	// empty record and no error.
	Load() (Record, error)
	// Save overwrites all three session entries
	Save(rec Record) error
	// ClearToken removes the token and the base URL it belongs to, keeping
	// the selected base URL
	ClearToken() error
}
