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

type QuestionHandler struct {
	Catalog  *service.CatalogService
	Validate *validator.Validate
}

func NewQuestionHandler(catalog *service.CatalogService, validate *validator.Validate) *QuestionHandler {
	return &QuestionHandler{Catalog: catalog, Validate: validate}
}

func (h *QuestionHandler) List(c echo.Context) error {
	questions, err := h.Catalog.ListQuestions(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponsesFromEntities(questions))
}

func (h *QuestionHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Catalog.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Create(c echo.Context) error {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.QuestionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Catalog.CreateQuestion(c.Request().Context(), service.QuestionInput{
		Contenu: req.Contenu,
		Type:    req.Type,
	}, ownerID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.QuestionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	question, err := h.Catalog.UpdateQuestion(c.Request().Context(), id, service.QuestionInput{
		Contenu: req.Contenu,
		Type:    req.Type,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionResponseFromEntity(question))
}

func (h *QuestionHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Catalog.DeleteQuestion(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Search paginates with 0-based page indices; an empty filter returns
// every question.
func (h *QuestionHandler) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.Catalog.SearchQuestions(c.Request().Context(), repository.QuestionSearchFilter{
		Type: c.QueryParam("type"),
		Text: c.QueryParam("q"),
	}, page, size)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.QuestionSearchResponse{
		Items:      dto.QuestionResponsesFromEntities(result.Items),
		TotalPages: result.TotalPages,
	})
}

func (h *QuestionHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
