package model

// VerifyResult is the presence check outcome for one artifact file.
type VerifyResult struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Size  int64  `json:"size,omitempty"`
	Error string `json:"error,omitempty"`
}

// VerifyReport collects the preflight checks for a whole manifest.
type VerifyReport struct {
	Workspace string         `json:"workspace"`
	Results   []VerifyResult `json:"results"`
}

// MissingCount returns how many artifact files failed the check.
func (r *VerifyReport) MissingCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Error != "" {
			n++
		}
	}
	return n
}

// OK reports whether every artifact file is present and readable.
func (r *VerifyReport) OK() bool {
	return r.MissingCount() == 0
}
