package controller

import (
	"net/http"
	"strings"

	"rocketboost-admin/models"
	"rocketboost-admin/service"
)

// AuthController handles admin login
type AuthController struct {
	auth service.AuthServiceInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(auth service.AuthServiceInterface) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles POST /api/auth/login
// Example request:
//
//	{"username": "admin", "password": "..."}
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	res, err := c.auth.Login(&req)
	if err != nil {
		writeDomainError(w, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
