package controller

import (
	"errors"

	"github.com/prafuldivani/quiz-app/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels to response codes. Anything
// unrecognized is a 500 and gets logged; services never swallow errors, so
// the mapping here is the only translation layer.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(c, util.ErrQuizNotFound.Error())
	case errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(c, util.ErrAttemptNotFound.Error())
	case errors.Is(err, util.ErrForbidden):
		util.Forbidden(c)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.Forbidden(c)
	case util.IsValidation(err):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
