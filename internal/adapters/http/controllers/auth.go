package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/handlers"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/middleware"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/dto"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

type AuthService interface {
	Register(ctx context.Context, request *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, request *dto.LoginRequest) (*domain.Token, error)
	Logout(ctx context.Context, identity *domain.Identity) error
}

type AuthController struct {
	authService AuthService
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" example:"alice"`
	CreatedAt time.Time `json:"createdAt"`
}

type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary     Register a user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     dto.RegisterRequest true "Credentials"
// @Success     201     {object} UserResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Router      /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	user, err := ac.authService.Register(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UserResponse{
		ID:        string(user.ID),
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// Login godoc
// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     dto.LoginRequest true "Credentials"
// @Success     200     {object} TokenResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Router      /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	token, err := ac.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	})
}

// Logout godoc
// @Summary     Revoke the current token
// @Tags        auth
// @Security    BearerAuth
// @Success     204
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     403 {object} handlers.ErrorResponse
// @Router      /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		handlers.HandleError(c, serviceerrors.NewUnauthorizedError("Access token required"))
		return
	}
	if err := ac.authService.Logout(c.Request.Context(), identity); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
