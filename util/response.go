package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint returns:
// { "ok": bool, "data": ..., "message": string }.
type APIResponse struct {
	OK      bool        `json:"ok"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func errorMessage(params APIErrorParams) string {
	if params.Msg != "" {
		return params.Msg
	}
	if params.Err != nil {
		return params.Err.Error()
	}
	return "request failed"
}

func callError(c *gin.Context, status int, params APIErrorParams) {
	c.JSON(status, APIResponse{
		OK:      false,
		Data:    map[string]interface{}{},
		Message: errorMessage(params),
	})
}

// CallErrorNotFound returns a 404 response.
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusNotFound, params)
}

// CallUserError returns a 400 response for invalid input.
func CallUserError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusBadRequest, params)
}

// CallServerError returns a 500 response.
func CallServerError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusInternalServerError, params)
}

// CallUserNotAuthorized returns a 401 response.
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusUnauthorized, params)
}

// CallUserForbidden returns a 403 response for business-rule denials.
func CallUserForbidden(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusForbidden, params)
}

// CallSuccessOK returns a 200 response with the given message and data.
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		OK:      true,
		Data:    params.Data,
		Message: params.Msg,
	})
}
