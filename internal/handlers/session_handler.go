package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/services"
	"teamspace/internal/session"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(s session.Session) (string, error)
}

// SessionHandler issues session tokens and answers routing guard queries.
type SessionHandler struct {
	issuer        TokenIssuer
	memberService services.MemberServicer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(issuer TokenIssuer, memberService services.MemberServicer) *SessionHandler {
	return &SessionHandler{issuer: issuer, memberService: memberService}
}

// CreateSessionRequest represents the request payload for opening a session.
// A blank TeamSpaceID is resolved from the user's membership.
type CreateSessionRequest struct {
	UserID      string `json:"userID" binding:"required,user_id"`
	Username    string `json:"username" binding:"required"`
	TeamSpaceID string `json:"teamSpaceID" binding:"omitempty,teamspace_id"`
}

type guardQuery struct {
	Path string `form:"path" binding:"required"`
}

// CreateSession issues a session token
// @Summary     Open a session
// @Tags        sessions
// @Accept      json
// @Produce     json
// @Param       request body CreateSessionRequest true "Session identity"
// @Success     200 {object} envelope.Envelope "status 201 with {token, session}"
// @Router      /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	const op = "createSession"

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	sess := session.Session{UserID: req.UserID, Username: req.Username, TeamSpaceID: req.TeamSpaceID}
	if sess.TeamSpaceID == "" {
		ts, err := h.memberService.GetTeamSpaceByUserID(c.Request.Context(), req.UserID)
		switch {
		case err == nil:
			sess.TeamSpaceID = ts.TeamSpaceID
		case errors.Is(err, apperrors.ErrMemberNotFound):
			// Not in a team space yet; the guard sends the user to the join page.
		default:
			respond(c, op, nil, err)
			return
		}
	}

	token, err := h.issuer.Issue(sess)
	if err != nil {
		respond(c, op, nil, apperrors.Wrap(apperrors.ErrInvalidToken, err))
		return
	}
	respond(c, op, gin.H{"token": token, "session": sess}, nil)
}

// Guard tells the client whether the session may view a page
// @Summary     Routing guard
// @Tags        sessions
// @Produce     json
// @Security    BearerAuth
// @Param       path query string true "Page path"
// @Success     200 {object} envelope.Envelope "status 201 with {allow, redirect}"
// @Router      /sessions/guard [get]
func (h *SessionHandler) Guard(c *gin.Context) {
	const op = "guard"

	var q guardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalid(c, op, err)
		return
	}
	respond(c, op, session.Guard(session.FromContext(c.Request.Context()), q.Path), nil)
}
