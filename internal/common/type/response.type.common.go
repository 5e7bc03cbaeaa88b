package types

// Response is what services hand back to handlers; the "send" closure set
// by middleware.ResponseInit renders it as ResponseAPI.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
}

type ResponseAPI struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   *Fault `json:"error,omitempty"`
}

// Fault is the error part of ResponseAPI.
type Fault struct {
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
