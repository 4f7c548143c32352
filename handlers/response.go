package handlers

import (
	"errors"
	"net/http"

	"restaurant-orders-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response is the message-style body shared by action endpoints.
// Code is the HTTP status it is written with.
type Response struct {
	Code    int     `json:"-"`
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Link    *string `json:"link"`
}

// Success builds a successful response; an empty link is rendered as null
func Success(code int, message, link string) Response {
	r := Response{Code: code, Success: true, Message: message}
	if link != "" {
		r.Link = &link
	}
	return r
}

func Failure(code int, message string) Response {
	return Response{Code: code, Message: message}
}

func (r Response) Write(c *gin.Context) {
	c.JSON(r.Code, r)
}

// ErrorResponse classifies a service error. Unexpected errors get a generic
// message so storage details never leak to clients.
func ErrorResponse(err error) Response {
	switch {
	case errors.Is(err, services.ErrValidation):
		return Failure(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return Failure(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrStaffNotFound):
		return Failure(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrTableTaken),
		errors.Is(err, services.ErrMenuItemInUse),
		errors.Is(err, services.ErrEmailTaken):
		return Failure(http.StatusConflict, err.Error())
	default:
		return Failure(http.StatusInternalServerError, "internal server error")
	}
}

func writeError(c *gin.Context, err error) {
	resp := ErrorResponse(err)
	if resp.Code == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("requestID"),
			"path":       c.FullPath(),
		}).Error("request failed")
		_ = c.Error(err)
	}
	resp.Write(c)
}

// writeOrderError treats unknown menu items in an order payload as bad input
func writeOrderError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrMenuItemNotFound) {
		Failure(http.StatusBadRequest, err.Error()).Write(c)
		return
	}
	writeError(c, err)
}

func badRequest(c *gin.Context, message string) {
	Failure(http.StatusBadRequest, message).Write(c)
}
