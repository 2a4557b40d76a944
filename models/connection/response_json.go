package connection

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespSubmitFleet struct {
	GameId string `json:"game_id"`
	Status string `json:"status,omitempty"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
