package dto

// APIResponse is the envelope every endpoint returns:
// {success, data?, count?, message?, error?}. Detail carries raw error
// text and is only populated outside production mode.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// NewDataResponse wraps a single object.
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewListResponse wraps a list plus its element count.
func NewListResponse(data interface{}, count int) APIResponse {
	return APIResponse{Success: true, Data: data, Count: &count}
}

// NewMessageResponse wraps a bare success message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// NewErrorResponse wraps an error message.
func NewErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// WithDetail attaches diagnostic detail to an error response.
func (r APIResponse) WithDetail(detail string) APIResponse {
	r.Detail = detail
	return r
}
