package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prafuldivani/quiz-app/internal/service"
	"github.com/prafuldivani/quiz-app/internal/util"
	"github.com/prafuldivani/quiz-app/pkg/storage"

	"github.com/gin-gonic/gin"
)

// QuizController is the authenticated admin surface. Every quiz-scoped
// handler goes through the ownership guard inside the service before it
// touches anything.
type QuizController struct {
	QuizSvc    *service.QuizService
	AttemptSvc *service.AttemptService
	Storage    storage.Provider
}

func NewQuizController(quizSvc *service.QuizService, attemptSvc *service.AttemptService, store storage.Provider) *QuizController {
	return &QuizController{QuizSvc: quizSvc, AttemptSvc: attemptSvc, Storage: store}
}

// @Summary Create a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizReq true "quiz payload"
// @Success 201 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizSvc.CreateQuiz(claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// @Summary List my quizzes
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.QuizSvc.ListQuizzes(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": rows, "total": len(rows)})
}

// @Summary Get a quiz with answers (owner view)
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.QuizSvc.GetQuiz(ctx.Param("id"), claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary Update a quiz, replacing its question set
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "quiz id"
// @Param body body service.QuizReq true "quiz payload"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizSvc.UpdateQuiz(ctx.Param("id"), claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary Delete a quiz and everything under it
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := ctx.Param("id")
	if err := c.QuizSvc.DeleteQuiz(id, claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary List attempts for a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AttemptSvc.ListAttempts(ctx.Param("id"), claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": attempts, "total": len(attempts)})
}

// @Summary Upload a cover image for a quiz
// @Tags quizzes
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "quiz id"
// @Param file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/cover [post]
func (c *QuizController) UploadCover(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := ctx.Param("id")
	if _, err := c.QuizSvc.VerifyOwnership(quizID, claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		util.BadRequest(ctx, "unsupported image type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("covers/%s%s", quizID, ext)
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.QuizSvc.SetCoverImage(quizID, claims.UserID, url); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"coverImage": url})
}
