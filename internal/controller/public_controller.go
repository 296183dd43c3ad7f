package controller

import (
	"github.com/prafuldivani/quiz-app/internal/service"
	"github.com/prafuldivani/quiz-app/internal/util"
	"github.com/prafuldivani/quiz-app/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// PublicController is the anonymous quiz-taking surface: list published
// quizzes, fetch the sanitized quiz, submit answers, view a result.
type PublicController struct {
	QuizSvc    *service.QuizService
	AttemptSvc *service.AttemptService
}

func NewPublicController(quizSvc *service.QuizService, attemptSvc *service.AttemptService) *PublicController {
	return &PublicController{QuizSvc: quizSvc, AttemptSvc: attemptSvc}
}

// @Summary List published quizzes
// @Tags public
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/public/quizzes [get]
func (c *PublicController) ListQuizzes(ctx *gin.Context) {
	rows, err := c.QuizSvc.ListPublished()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": rows, "total": len(rows)})
}

// @Summary Get a published quiz without answers
// @Tags public
// @Produce json
// @Param id path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/public/quizzes/{id} [get]
func (c *PublicController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizSvc.GetPublicQuiz(ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary Submit answers to a published quiz
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "quiz id"
// @Param body body service.SubmitReq true "submission payload"
// @Success 201 {object} util.Response
// @Router /api/public/quizzes/{id}/submit [post]
func (c *PublicController) Submit(ctx *gin.Context) {
	var req service.SubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quizID := ctx.Param("id")
	result, err := c.AttemptSvc.Submit(quizID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	monitoring.SubmissionsGraded.WithLabelValues(quizID).Inc()
	util.Created(ctx, result)
}

// @Summary View a graded attempt
// @Tags public
// @Produce json
// @Param id path string true "quiz id"
// @Param attemptId path string true "attempt id"
// @Success 200 {object} util.Response
// @Router /api/public/quizzes/{id}/results/{attemptId} [get]
func (c *PublicController) GetResult(ctx *gin.Context) {
	result, err := c.AttemptSvc.GetResult(ctx.Param("id"), ctx.Param("attemptId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
