package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/server/http/dto"
)

// errorMessages holds the client-facing wording for one resource.
type errorMessages struct {
	notFound  string
	malformed string
	conflict  string
	server    string
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Response{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, data any, info model.PageInfo) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    data,
		Pagination: &dto.Pagination{
			Page:  info.Page,
			Limit: info.Limit,
			Total: info.Total,
			Pages: info.Pages,
		},
	})
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.Response{Success: false, Message: message})
}

func badRequestBody(c *gin.Context) {
	abortWithMessage(c, http.StatusBadRequest, "Invalid request body")
}

// fail maps domain errors onto the response envelope. Unclassified errors are
// logged and answered with a generic 500.
func fail(c *gin.Context, logger *slog.Logger, err error, msgs errorMessages) {
	var (
		validation   *domainErrors.ValidationError
		reference    *domainErrors.ReferenceError
		availability *domainErrors.AvailabilityError
		transition   *domainErrors.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validation):
		fields := make([]dto.FieldError, 0, len(validation.Fields))
		for _, f := range validation.Fields {
			fields = append(fields, dto.FieldError{Field: f.Field, Message: f.Message})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Response{Success: false, Message: "Validation failed", Errors: fields})
	case errors.As(err, &reference), errors.As(err, &availability), errors.As(err, &transition):
		abortWithMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrMalformedID):
		abortWithMessage(c, http.StatusBadRequest, msgs.malformed)
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithMessage(c, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		abortWithMessage(c, http.StatusBadRequest, msgs.conflict)
	case errors.Is(err, domainErrors.ErrStatusConflict):
		abortWithMessage(c, http.StatusBadRequest, "Order status changed concurrently, please retry")
	default:
		_ = c.Error(err)
		logger.Error(msgs.server,
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		abortWithMessage(c, http.StatusInternalServerError, msgs.server)
	}
}

// queryInt parses an optional integer query parameter; anything unparsable is zero.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func pageFromQuery(c *gin.Context) model.Page {
	return model.Page{Number: queryInt(c, "page"), Limit: queryInt(c, "limit")}
}
