package dto

// SideEffect reports one best-effort step run while serving a request.
type SideEffect struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
