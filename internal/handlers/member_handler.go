package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/services"
)

// MemberHandler handles membership and per-user lookups.
type MemberHandler struct {
	memberService services.MemberServicer
	queryService  services.QueryServicer
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService services.MemberServicer, queryService services.QueryServicer) *MemberHandler {
	return &MemberHandler{memberService: memberService, queryService: queryService}
}

// JoinTeamSpaceRequest represents the request payload for joining by code.
type JoinTeamSpaceRequest struct {
	JoinCode string `json:"joinCode" binding:"required,join_code"`
	UserID   string `json:"userID" binding:"required,user_id"`
	Username string `json:"username" binding:"required"`
}

type memberURI struct {
	TeamSpaceID string `uri:"teamSpaceID" binding:"required,teamspace_id"`
	UserID      string `uri:"userID" binding:"required,user_id"`
}

// AddUserToTeamSpace joins a user to the team space owning the join code
// @Summary     Join a team space
// @Description An unknown join code yields status 401 "Invalid Join Code"
// @Tags        members
// @Accept      json
// @Produce     json
// @Param       request body JoinTeamSpaceRequest true "Join code and user"
// @Success     200 {object} envelope.Envelope "status 201 with {teamSpaceID}"
// @Router      /teamspaces/join [post]
func (h *MemberHandler) AddUserToTeamSpace(c *gin.Context) {
	const op = "addUserToTeamSpace"

	var req JoinTeamSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if malformedJoinCode(err) {
			respond(c, op, nil, apperrors.ErrInvalidJoinCode)
			return
		}
		respondInvalid(c, op, err)
		return
	}

	ts, err := h.memberService.AddUserToTeamSpace(c.Request.Context(), req.JoinCode, req.UserID, req.Username)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"teamSpaceID": ts.TeamSpaceID}, nil)
}

// RemoveUserFromTeamSpace detaches a member and returns it
// @Summary     Remove a member
// @Tags        members
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Param       userID      path string true "User ID"
// @Success     200 {object} envelope.Envelope "status 201 with {user}"
// @Router      /teamspaces/{teamSpaceID}/users/{userID} [delete]
func (h *MemberHandler) RemoveUserFromTeamSpace(c *gin.Context) {
	const op = "removeUserFromTeamSpace"

	var uri memberURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	m, err := h.memberService.RemoveUserFromTeamSpace(c.Request.Context(), uri.TeamSpaceID, uri.UserID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"user": m}, nil)
}

// GetAllTeamSpaceUsers lists members in join order.
func (h *MemberHandler) GetAllTeamSpaceUsers(c *gin.Context) {
	const op = "getAllTeamSpaceUsers"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	users, err := h.memberService.GetAllTeamSpaceUsers(c.Request.Context(), uri.TeamSpaceID)
	respondList(c, op, users, err)
}

// GetTeamSpaceLeader returns the first member flagged as leader.
func (h *MemberHandler) GetTeamSpaceLeader(c *gin.Context) {
	const op = "getTeamSpaceLeader"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	leader, err := h.memberService.GetTeamSpaceLeader(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, leader, nil)
}

// GetTeamSpaceByUserID returns the team space a user belongs to.
func (h *MemberHandler) GetTeamSpaceByUserID(c *gin.Context) {
	const op = "getTeamSpaceByUserID"

	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	ts, err := h.memberService.GetTeamSpaceByUserID(c.Request.Context(), uri.UserID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, ts, nil)
}

// GetUserByID returns the member record of a user.
func (h *MemberHandler) GetUserByID(c *gin.Context) {
	const op = "getUserByID"

	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	m, err := h.memberService.GetUserByID(c.Request.Context(), uri.UserID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, m, nil)
}

// GetUserStyles returns the user's style object.
func (h *MemberHandler) GetUserStyles(c *gin.Context) {
	const op = "getUserStyles"

	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	styles, err := h.memberService.GetUserStyles(c.Request.Context(), uri.UserID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, styles, nil)
}

// GetTransactionsByUserID returns every transaction of the team spaces the
// user belongs to
// @Summary     Transactions by user
// @Tags        members
// @Produce     json
// @Param       userID    path  string true  "User ID"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} envelope.Envelope
// @Router      /users/{userID}/transactions [get]
func (h *MemberHandler) GetTransactionsByUserID(c *gin.Context) {
	const op = "getTransactionsByUserID"

	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	txs, err := h.queryService.TransactionsByUserID(c.Request.Context(), uri.UserID)
	respondList(c, op, txs, err)
}

// malformedJoinCode reports whether binding failed on the join code field. A
// code that cannot exist is reported the same way as an unknown one.
func malformedJoinCode(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() == "JoinCode" {
			return true
		}
	}
	return false
}
