package utils

import "github.com/gofiber/fiber/v2"

// StandardResponse is the envelope used for every error response.
type StandardResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageBody is the body of confirmations such as successful deletes.
type MessageBody struct {
	Message string `json:"message" example:"Movie deleted successfully"`
}

// MessageResponse sends a 200 response carrying only a message
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(MessageBody{Message: message})
}

// ErrorResponse sends an error response. The message is repeated under
// "error" for clients that only look there.
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
		Error:   message,
	})
}
