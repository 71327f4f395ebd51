package httpapi

import "github.com/labstack/echo/v4"

type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func apiError(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{
		Error:   message,
		Success: false,
	})
}
