package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"people-service/internal/domains/person"
	"people-service/internal/shared/response"
)

// Not-found messages per route
const (
	msgPersonNotFound       = "Person not found"
	msgPersonNotFoundByFood = "Person not found with specified favorite food"
	msgInternalServerError  = "Internal server error"
)

type PersonHandler struct {
	service person.Service
}

func NewPersonHandler(svc person.Service) *PersonHandler {
	return &PersonHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the /people routes on r
func (h *PersonHandler) RegisterRoutes(r gin.IRouter) {
	people := r.Group("/people")
	{
		people.POST("", h.Create)
		people.POST("/many", h.CreateMany)

		people.GET("/food/:food", h.GetByFood)
		people.GET("/:id", h.GetByID)

		people.PUT("/name/:name", h.SetAgeByName)
		people.PUT("/:id", h.AddFood)

		people.DELETE("/name/:name", h.DeleteByName)
		people.DELETE("/:id", h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /people
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) Create(c *gin.Context) {
	var req person.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, person.NewValidationError(err), msgPersonNotFound)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.renderError(c, err, msgPersonNotFound)
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /people/many
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) CreateMany(c *gin.Context) {
	var reqs []person.CreatePersonRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.renderError(c, person.NewValidationError(err), msgPersonNotFound)
		return
	}

	created, err := h.service.CreateMany(c.Request.Context(), reqs)
	if err != nil {
		h.renderError(c, err, msgPersonNotFound)
		return
	}
	if created == nil {
		created = []*person.Person{}
	}

	response.JSON(c, http.StatusCreated, created)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /people/:id
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) GetByID(c *gin.Context) {
	found, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, msgPersonNotFound)
		return
	}

	response.JSON(c, http.StatusOK, found)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /people/food/:food
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) GetByFood(c *gin.Context) {
	found, err := h.service.GetByFavoriteFood(c.Request.Context(), c.Param("food"))
	if err != nil {
		h.renderError(c, err, msgPersonNotFoundByFood)
		return
	}

	response.JSON(c, http.StatusOK, found)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /people/:id - append "hamburger" to favoriteFoods
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) AddFood(c *gin.Context) {
	updated, err := h.service.AddDefaultFood(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, msgPersonNotFound)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /people/name/:name - set age to 20
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) SetAgeByName(c *gin.Context) {
	updated, err := h.service.SetDefaultAgeByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.renderError(c, err, msgPersonNotFound)
		return
	}

	response.JSON(c, http.StatusOK, updated)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /people/:id
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) Delete(c *gin.Context) {
	removed, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, msgPersonNotFound)
		return
	}

	response.JSON(c, http.StatusOK, removed)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /people/name/:name
// ════════════════════════════════════════════════════════════════

func (h *PersonHandler) DeleteByName(c *gin.Context) {
	name := c.Param("name")

	count, err := h.service.DeleteByName(c.Request.Context(), name)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("name", name).
			Msg("Failed to delete people by name")
		response.WithMessage(c, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	response.JSON(c, http.StatusOK, person.DeletedMessage(count))
}

// renderError maps domain errors to the HTTP status and body of a route.
// notFoundMessage is what the route tells the client when nothing matched.
func (h *PersonHandler) renderError(c *gin.Context, err error, notFoundMessage string) {
	statusCode := person.ToHTTPStatus(err)
	code := person.ToErrorCode(err)

	switch statusCode {
	case http.StatusNotFound:
		response.ErrorResponse(c, statusCode, code, notFoundMessage)

	case http.StatusBadRequest:
		var ve *person.ValidationError
		if errors.As(err, &ve) {
			response.ErrorWithDetails(c, statusCode, code, ve.Message, ve.Details)
			return
		}
		response.ErrorResponse(c, statusCode, code, err.Error())

	default:
		response.ErrorWithDetails(c, statusCode, code, msgInternalServerError, err.Error())
	}
}
