package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"teamspace/internal/services"
)

// TeamSpaceHandler handles team-space-level requests.
type TeamSpaceHandler struct {
	teamSpaceService services.TeamSpaceServicer
	queryService     services.QueryServicer
}

// NewTeamSpaceHandler creates a new TeamSpaceHandler.
func NewTeamSpaceHandler(teamSpaceService services.TeamSpaceServicer, queryService services.QueryServicer) *TeamSpaceHandler {
	return &TeamSpaceHandler{teamSpaceService: teamSpaceService, queryService: queryService}
}

// CreateTeamSpaceRequest represents the request payload for creating a team space.
type CreateTeamSpaceRequest struct {
	TeamSpaceName  string `json:"teamSpaceName" binding:"required"`
	LeaderUserID   string `json:"leaderUserID" binding:"required,user_id"`
	LeaderUsername string `json:"leaderUsername" binding:"required"`
}

// EditTeamSpaceRequest represents the request payload for editing a team space.
type EditTeamSpaceRequest struct {
	TeamSpaceName string           `json:"teamSpaceName" binding:"required"`
	TotalBudget   *decimal.Decimal `json:"totalBudget" binding:"required"`
}

// CreateTeamSpace handles the creation of a new team space
// @Summary     Create a team space
// @Description Create a team space whose only member is its leader
// @Tags        teamspaces
// @Accept      json
// @Produce     json
// @Param       request body CreateTeamSpaceRequest true "Team space details"
// @Success     200 {object} envelope.Envelope "status 201 with {teamSpaceID}"
// @Router      /teamspaces [post]
func (h *TeamSpaceHandler) CreateTeamSpace(c *gin.Context) {
	const op = "createTeamSpace"

	var req CreateTeamSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	ts, err := h.teamSpaceService.CreateTeamSpace(c.Request.Context(), req.TeamSpaceName, req.LeaderUserID, req.LeaderUsername)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"teamSpaceID": ts.TeamSpaceID}, nil)
}

// GetAllTeamSpaces returns every team space
// @Summary     List team spaces
// @Tags        teamspaces
// @Produce     json
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} envelope.Envelope
// @Router      /teamspaces [get]
func (h *TeamSpaceHandler) GetAllTeamSpaces(c *gin.Context) {
	all, err := h.teamSpaceService.GetAllTeamSpaces(c.Request.Context())
	respondList(c, "getAllTeamSpaces", all, err)
}

// GetTeamSpaceByID returns one team space
// @Summary     Get team space by ID
// @Tags        teamspaces
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Success     200 {object} envelope.Envelope
// @Router      /teamspaces/{teamSpaceID} [get]
func (h *TeamSpaceHandler) GetTeamSpaceByID(c *gin.Context) {
	const op = "getTeamSpaceByID"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	ts, err := h.teamSpaceService.GetTeamSpaceByID(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, ts, nil)
}

// EditTeamSpace replaces the name and total budget
// @Summary     Edit a team space
// @Tags        teamspaces
// @Accept      json
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Param       request body EditTeamSpaceRequest true "New name and total budget"
// @Success     200 {object} envelope.Envelope "status 202"
// @Router      /teamspaces/{teamSpaceID} [put]
func (h *TeamSpaceHandler) EditTeamSpace(c *gin.Context) {
	const op = "editTeamSpace"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}
	var req EditTeamSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, op, err)
		return
	}

	err := h.teamSpaceService.EditTeamSpace(c.Request.Context(), uri.TeamSpaceID, req.TeamSpaceName, *req.TotalBudget)
	respond(c, op, nil, err)
}

// GenerateNewJoinCode rotates the join code
// @Summary     Rotate join code
// @Tags        teamspaces
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Success     200 {object} envelope.Envelope "status 201 with {joinCode}"
// @Router      /teamspaces/{teamSpaceID}/join-code [post]
func (h *TeamSpaceHandler) GenerateNewJoinCode(c *gin.Context) {
	const op = "generateNewJoinCode"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	code, err := h.teamSpaceService.GenerateNewJoinCode(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"joinCode": code}, nil)
}

// GetJoinCode returns the current join code
// @Summary     Get join code
// @Tags        teamspaces
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Success     200 {object} envelope.Envelope "status 201 with {joinCode}"
// @Router      /teamspaces/{teamSpaceID}/join-code [get]
func (h *TeamSpaceHandler) GetJoinCode(c *gin.Context) {
	const op = "getJoinCode"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	code, err := h.teamSpaceService.GetJoinCode(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"joinCode": code}, nil)
}

// GetTeamSpaceStyles returns the team space's style object.
func (h *TeamSpaceHandler) GetTeamSpaceStyles(c *gin.Context) {
	const op = "getTeamSpaceStyles"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	styles, err := h.teamSpaceService.GetTeamSpaceStyles(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, styles, nil)
}

// GetTotalBudget returns the team space's total budget
// @Summary     Total budget
// @Tags        teamspaces
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Success     200 {object} envelope.Envelope "status 201 with {totalBudget}"
// @Router      /teamspaces/{teamSpaceID}/total-budget [get]
func (h *TeamSpaceHandler) GetTotalBudget(c *gin.Context) {
	const op = "getTotalBudget"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	total, err := h.queryService.TotalBudget(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"totalBudget": total}, nil)
}

// GetTotalAmountUsed sums spending over every category
// @Summary     Total amount used
// @Tags        teamspaces
// @Produce     json
// @Param       teamSpaceID path string true "Team space ID"
// @Success     200 {object} envelope.Envelope "status 201 with {totalAmountUsed}"
// @Router      /teamspaces/{teamSpaceID}/total-amount-used [get]
func (h *TeamSpaceHandler) GetTotalAmountUsed(c *gin.Context) {
	const op = "getTotalAmountUsed"

	var uri teamSpaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondInvalid(c, op, err)
		return
	}

	total, err := h.queryService.TotalAmountUsed(c.Request.Context(), uri.TeamSpaceID)
	if err != nil {
		respond(c, op, nil, err)
		return
	}
	respond(c, op, gin.H{"totalAmountUsed": total}, nil)
}
