package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/services"
	"github.com/n8hotnews-a11y/Smart-Frigde/utils"
)

type AuthController struct {
	GW *services.IdentityGateway
}

func NewAuthController(gw *services.IdentityGateway) *AuthController {
	return &AuthController{GW: gw}
}

type CredentialsInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// authStatus picks the HTTP status for a provider rejection.
func authStatus(kind services.AuthErrorKind) int {
	switch kind {
	case services.AuthEmailInUse:
		return http.StatusConflict
	case services.AuthInvalidCredential:
		return http.StatusUnauthorized
	case services.AuthInvalidEmail, services.AuthWeakPassword:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (a *AuthController) respondSignedIn(c *gin.Context, status int, id *services.Identity) {
	token, err := utils.GenerateJWT(id.UID, id.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(status, gin.H{
		"token": token,
		"uid":   id.UID,
		"email": id.Email,
	})
}

func (a *AuthController) handleAuthErr(c *gin.Context, err error) {
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		c.JSON(authStatus(authErr.Kind), gin.H{"error": authErr.Message, "kind": authErr.Kind})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := a.GW.SignUp(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		a.handleAuthErr(c, err)
		return
	}
	a.respondSignedIn(c, http.StatusCreated, id)
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var input CredentialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := a.GW.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		a.handleAuthErr(c, err)
		return
	}
	a.respondSignedIn(c, http.StatusOK, id)
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	a.GW.SignOut()
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
