package types

// SuccessEnvelope wraps every 2xx JSON body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// AgentFailure is the in-band miss returned with a 200 to the agent workflow,
// which relays Error to the user verbatim.
type AgentFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewAgentFailure(message string) AgentFailure {
	return AgentFailure{Success: false, Error: message}
}
