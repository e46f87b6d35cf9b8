package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techstore/middleware"
	"techstore/models"
	"techstore/session"
)

type SessionController struct {
	Store  *session.Store
	Secret string
}

// @Summary Start a session
// @Description Creates an empty cart and returns the bearer token that addresses it
// @Tags Session
// @Produce json
// @Success 201 {object} models.Response{data=models.SessionResponse}
// @Router /session [post]
func (ctrl *SessionController) Create(c *gin.Context) {
	sess := ctrl.Store.Create()

	token, err := session.IssueToken(ctrl.Secret, sess)
	if err != nil {
		ctrl.Store.End(sess.ID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Session created",
		Data: models.SessionResponse{
			Token:     token,
			ExpiresAt: sess.ExpiresAt.Unix(),
		},
	})
}

// @Summary End the session
// @Description Discards the cart and cancels any pending checkout
// @Tags Session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /session [delete]
func (ctrl *SessionController) End(c *gin.Context) {
	ctrl.Store.End(middleware.CurrentSession(c).ID)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Session ended"})
}

// @Summary Refresh the session token
// @Description Reissues the bearer token with the session's extended expiry
// @Tags Session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.SessionResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /session/refresh [post]
func (ctrl *SessionController) Refresh(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	token, err := session.IssueToken(ctrl.Secret, sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Session refreshed",
		Data: models.SessionResponse{
			Token:     token,
			ExpiresAt: sess.ExpiresAt.Unix(),
		},
	})
}
