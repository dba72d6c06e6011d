package handler

import (
	"errors"
	"net/http"
	"strconv"

	"formflow/api/middleware"
	"formflow/internal/dto"
	"formflow/internal/repository"
	"formflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	Reviews  *service.ReviewService
	Validate *validator.Validate
}

func NewReviewHandler(reviews *service.ReviewService, validate *validator.Validate) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Validate: validate}
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	formulaireID, err := strconv.ParseUint(c.QueryParam("formulaireId"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("formulaireId is required"))
	}

	var clientUserID *uint
	if raw := c.QueryParam("clientUserId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid clientUserId"))
		}
		id := uint(parsed)
		clientUserID = &id
	}

	views, err := h.Reviews.ListReviews(c.Request().Context(), uint(formulaireID), clientUserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ClientAnswerViewsFromService(views))
}

func (h *ReviewHandler) UpsertOne(c echo.Context) error {
	reviewerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.UpsertReviewItem
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	err := h.Reviews.UpsertOne(c.Request().Context(), reviewerID, repository.CommentUpsert{
		ReponseClientID: req.ReponseClientID,
		Commentaire:     req.Commentaire,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return writeMessage(c, http.StatusOK, "Comment saved")
}

// UpsertBatch commits every item or none.
func (h *ReviewHandler) UpsertBatch(c echo.Context) error {
	reviewerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.UpsertReviewBatchRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	items := make([]repository.CommentUpsert, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, repository.CommentUpsert{
			ReponseClientID: item.ReponseClientID,
			Commentaire:     item.Commentaire,
		})
	}
	accepted, err := h.Reviews.UpsertBatch(c.Request().Context(), reviewerID, items)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UpsertReviewBatchResponse{Accepted: accepted})
}

func (h *ReviewHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
