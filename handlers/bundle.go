package handlers

import (
	"auditorium/utils"
)

// HandlerBundle groups every handler the router needs.
type HandlerBundle struct {
	Tokens *utils.TokenManager

	BookingHandler    *BookingHandler
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	DepartmentHandler *DepartmentHandler
	AdminHandler      *AdminHandler
}
