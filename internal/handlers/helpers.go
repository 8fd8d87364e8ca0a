package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"teamspace/internal/envelope"
	apperrors "teamspace/internal/errors"
	"teamspace/internal/logger"
	"teamspace/internal/metrics"
	"teamspace/internal/pagination"
)

// teamSpaceURI binds the :teamSpaceID path parameter.
type teamSpaceURI struct {
	TeamSpaceID string `uri:"teamSpaceID" binding:"required,teamspace_id"`
}

// categoryURI binds :teamSpaceID and :categoryID.
type categoryURI struct {
	TeamSpaceID string `uri:"teamSpaceID" binding:"required,teamspace_id"`
	CategoryID  string `uri:"categoryID" binding:"required,category_id"`
}

// transactionURI binds :teamSpaceID and :transactionID.
type transactionURI struct {
	TeamSpaceID   string `uri:"teamSpaceID" binding:"required,teamspace_id"`
	TransactionID string `uri:"transactionID" binding:"required,transaction_id"`
}

// userURI binds :userID.
type userURI struct {
	UserID string `uri:"userID" binding:"required,user_id"`
}

// respond writes the envelope for (data, err). The HTTP status is always 200;
// callers read the envelope status.
func respond(c *gin.Context, operation string, data any, err error) {
	env := envelope.From(data, err)
	if err != nil {
		logFailure(c, operation, err)
	}
	metrics.ObserveOperation(operation, env.Status)
	c.JSON(http.StatusOK, env)
}

// respondInvalid reports a request that failed binding or validation.
func respondInvalid(c *gin.Context, operation string, err error) {
	respond(c, operation, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, bindingMessage(err)))
}

// bindingMessage names each rejected field the way clients spell it, e.g.
// "transactionID is invalid". Errors that are not field validations, such as
// malformed JSON, keep their own text.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", lowerFirst(fe.Field())))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is invalid", lowerFirst(fe.Field())))
	}
	return strings.Join(msgs, "; ")
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func logFailure(c *gin.Context, operation string, err error) {
	appErr := apperrors.As(err)
	if appErr.Internal == nil {
		return
	}
	logger.Get().Errorw("operation failed",
		"operation", operation,
		"code", appErr.Code,
		"internal", appErr.Internal.Error(),
		"path", c.Request.URL.Path,
	)
}

// page returns items unchanged unless the request asks for a page.
func page[T any](c *gin.Context, items []T) (any, error) {
	var req pagination.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, bindingMessage(err))
	}
	if !req.IsSet() {
		return items, nil
	}
	return pagination.Slice(items, req), nil
}

// respondList writes items, paged when requested.
func respondList[T any](c *gin.Context, operation string, items []T, err error) {
	if err != nil {
		respond(c, operation, nil, err)
		return
	}
	data, err := page(c, items)
	respond(c, operation, data, err)
}
