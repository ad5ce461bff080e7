package v1

import (
	"net/http"
	"strings"

	"github.com/dchoinie/church-membership-app-sub000/internal/auth"
	"github.com/dchoinie/church-membership-app-sub000/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterSessionRoutes registers the routes for the session with
// the RouterGroup that is passed.
func RegisterSessionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSession)
	r.GET("", GetSession)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Session
// @Success		204
// @Router			/v1/session [options]
func OptionsSession(c *gin.Context) {
	httputil.OptionsGet(c)
}

// SessionData describes the authenticated user, their church and the
// CSRF token mutating requests have to echo back.
type SessionData struct {
	UserID      uuid.UUID `json:"userId" example:"ec6e05e6-431b-4de2-b4a2-66ef51c53161"`
	Name        string    `json:"name" example:"Jane Doe"`
	Email       string    `json:"email" example:"jane@example.com"`
	ChurchID    string    `json:"churchId" example:"8a68dc63-de42-4eb0-a129-1a4e32a5d0ea"`
	Permissions []string  `json:"permissions" example:"giving:manage"`
	CSRFToken   string    `json:"csrfToken" example:"07b9658ba1e78e46d4296ce45125b8f524f04a82ae47935eb7b0b7f0dbc4bd49"`
}

type SessionResponse struct {
	Data  *SessionData `json:"data"`
	Error *string      `json:"error" example:"you must authenticate with a bearer token"`
}

// @Summary		Get session
// @Description	Returns the authenticated user, their permissions and the CSRF token for mutating requests
// @Tags			Session
// @Produce		json
// @Success		200	{object}	SessionResponse
// @Failure		401	{object}	SessionResponse
// @Router			/v1/session [get]
func GetSession(c *gin.Context) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		s := auth.ErrNoToken.Error()
		c.JSON(http.StatusUnauthorized, SessionResponse{Error: &s})
		return
	}

	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))

	// Permissions is a space separated list on the model
	permissions := strings.Fields(session.User.Permissions)
	if permissions == nil {
		permissions = []string{}
	}

	c.JSON(http.StatusOK, SessionResponse{Data: &SessionData{
		UserID:      session.User.ID,
		Name:        session.User.Name,
		Email:       session.User.Email,
		ChurchID:    session.ChurchID,
		Permissions: permissions,
		CSRFToken:   auth.CSRFToken(token),
	}})
}
