package model

// Diagnostics reports which record sources are reachable.
type Diagnostics struct {
	Database    DependencyStatus `json:"database"`
	Redis       DependencyStatus `json:"redis"`
	CSV         CSVStatus        `json:"csv"`
	MatchPolicy string           `json:"matchPolicy"`
	Time        string           `json:"time"`
}

// DependencyStatus is the state of one backing service.
type DependencyStatus struct {
	Configured bool   `json:"configured"`
	Connection string `json:"connection"`
	Target     string `json:"target,omitempty"`
	Error      string `json:"error,omitempty"`
	Records    *int   `json:"records,omitempty"`
}

// CSVStatus describes the CSV export lookup.
type CSVStatus struct {
	Found bool     `json:"found"`
	Path  string   `json:"path,omitempty"`
	Paths []string `json:"paths"`
}

// Connection states.
const (
	ConnectionSuccess       = "Success"
	ConnectionFailed        = "Failed"
	ConnectionNotConfigured = "Not configured"
)
