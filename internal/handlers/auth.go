package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// credentials is the shared request body for sign-up and sign-in.
type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindCredentials binds the request body and writes a 400 JSON on failure.
// Returns false when the request was already answered.
func (h *Handler) bindCredentials(c *gin.Context, dst *credentials) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// signUp godoc
// @Summary     Register an operator account
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       input body credentials true "username and password"
// @Success     200 {object} map[string]int
// @Failure     400 {object} map[string]string
// @Router      /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input credentials
	if !h.bindCredentials(c, &input) {
		return
	}

	id, err := h.services.SignUp(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// signIn godoc
// @Summary     Exchange credentials for a bearer token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       input body credentials true "username and password"
// @Success     200 {object} map[string]string
// @Failure     401 {object} map[string]string
// @Router      /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input credentials
	if !h.bindCredentials(c, &input) {
		return
	}

	token, err := h.services.GenerateToken(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		}
		// don't leak whether the username or the password was wrong
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
