package handler

import (
	"errors"
	"net/http"

	"formflow/api/middleware"
	"formflow/internal/dto"
	"formflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FormulaireHandler covers formulaire CRUD, question membership and the
// client submission endpoints.
type FormulaireHandler struct {
	Catalog     *service.CatalogService
	Submissions *service.SubmissionService
	Validate    *validator.Validate
}

func NewFormulaireHandler(catalog *service.CatalogService, submissions *service.SubmissionService, validate *validator.Validate) *FormulaireHandler {
	return &FormulaireHandler{Catalog: catalog, Submissions: submissions, Validate: validate}
}

func (h *FormulaireHandler) List(c echo.Context) error {
	formulaires, err := h.Catalog.ListFormulaires(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FormulaireListFromEntities(formulaires))
}

func (h *FormulaireHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	formulaire, err := h.Catalog.GetFormulaire(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	questions, err := h.Catalog.GetMembership(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FormulaireDetailResponse{
		ID:           formulaire.ID,
		Titre:        formulaire.Titre,
		DateCreation: formulaire.DateCreation,
		OwnerEmail:   formulaire.Owner.Email,
		Questions:    dto.QuestionResponsesFromEntities(questions),
	})
}

func (h *FormulaireHandler) Create(c echo.Context) error {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.FormulaireRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	formulaire, err := h.Catalog.CreateFormulaire(c.Request().Context(), service.FormulaireInput{Titre: req.Titre}, ownerID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.FormulaireListItem{
		ID:           formulaire.ID,
		Titre:        formulaire.Titre,
		DateCreation: formulaire.DateCreation,
	})
}

func (h *FormulaireHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.FormulaireRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	formulaire, err := h.Catalog.UpdateFormulaire(c.Request().Context(), id, service.FormulaireInput{Titre: req.Titre})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FormulaireListItem{
		ID:           formulaire.ID,
		Titre:        formulaire.Titre,
		DateCreation: formulaire.DateCreation,
	})
}

func (h *FormulaireHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Catalog.DeleteFormulaire(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FormulaireHandler) GetMembership(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	questions, err := h.Catalog.GetMembership(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MembershipResponseFromEntities(questions))
}

func (h *FormulaireHandler) ReplaceMembership(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.ReplaceMembershipRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	questions, err := h.Catalog.ReplaceMembership(c.Request().Context(), id, req.QuestionIDs)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MembershipResponseFromEntities(questions))
}

// Submit writes the caller's answers. The client identity comes from the
// session, never from the request.
func (h *FormulaireHandler) Submit(c echo.Context) error {
	clientID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	formulaireID, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.SubmissionRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	inputs := make([]service.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		inputs = append(inputs, service.AnswerInput{QuestionID: a.QuestionID, Valeur: a.Valeur})
	}
	answers, err := h.Submissions.Submit(c.Request().Context(), formulaireID, clientID, inputs)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ReponseClientResponsesFromEntities(answers))
}

func (h *FormulaireHandler) MyAnswers(c echo.Context) error {
	clientID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	formulaireID, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	answers, err := h.Submissions.MyAnswers(c.Request().Context(), formulaireID, clientID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ReponseClientResponsesFromEntities(answers))
}

func (h *FormulaireHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}
