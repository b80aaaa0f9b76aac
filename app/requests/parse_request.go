package requests

// ParseRequest body của POST /parse.
type ParseRequest struct {
	RawAddress string `json:"raw_address" binding:"required"`
}

// BatchParseRequest body của POST /parse/batch. The per-request address
// ceiling is enforced in the controller against the configured limit.
type BatchParseRequest struct {
	Addresses []string `json:"addresses" binding:"required,min=1"`
}
