package utils

// APIResponse represents the standard API response format
type APIResponse struct {
	Data    interface{} `json:"data"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Total   *int64      `json:"total,omitempty"`
}

// GetResponse creates a standard API response
func GetResponse(data interface{}, code int, message string, total *int64) APIResponse {
	return APIResponse{
		Data:    data,
		Code:    code,
		Message: message,
		Total:   total,
	}
}

// Count is a helper for the optional Total field.
func Count(n int) *int64 {
	v := int64(n)
	return &v
}
