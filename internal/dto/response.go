package dto

// Every endpoint responds with one of these envelopes.

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

func OK(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func Message(msg string) SuccessResponse {
	return SuccessResponse{Success: true, Message: msg}
}

func MessageWithData(msg string, data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Message: msg, Data: data}
}

func Err(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: ErrorBody{Message: msg}}
}
