package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

const maxSessionLength = 128

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type planResponse struct {
	MealCount int `json:"mealCount"`
	models.PlanView
}

type foodSwapBody struct {
	FoodItem string `json:"foodItem"`
}

func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.Param("session")
		if session == "" || len(session) > maxSessionLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
			return
		}
		c.Next()
	}
}

func (r *Router) createSession(c *gin.Context) {
	c.JSON(http.StatusCreated, sessionResponse{SessionID: uuid.New().String()})
}

func (r *Router) getMealPlanSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/schema+json", planner.ResponseSchemaJSON())
}

func (r *Router) getProfile(c *gin.Context) {
	profile, err := r.service.Profile(c.Request.Context(), c.Param("session"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (r *Router) saveProfile(c *gin.Context) {
	var body models.UserProfile
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	profile, err := r.service.SaveProfile(c.Request.Context(), c.Param("session"), body)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (r *Router) generateMealPlan(c *gin.Context) {
	var body planner.RawRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	gen, err := r.service.GeneratePlan(c.Request.Context(), c.Param("session"), body)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planResponse{
		MealCount: gen.Request.MealCount,
		PlanView:  planner.BuildView(gen.Plan, gen.Report),
	})
}

func (r *Router) getMealPlan(c *gin.Context) {
	plan, err := r.service.CurrentPlan(c.Request.Context(), c.Param("session"))
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, planner.BuildView(plan, nil))
}

func (r *Router) deleteMealPlan(c *gin.Context) {
	if err := r.service.ClearPlan(c.Request.Context(), c.Param("session")); err != nil {
		r.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) suggestFoodSwap(c *gin.Context) {
	var body foodSwapBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	suggestion, err := r.service.SuggestSwap(c.Request.Context(), c.Param("session"), body.FoodItem)
	if err != nil {
		r.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// writeError maps planner errors onto status codes.
func (r *Router) writeError(c *gin.Context, err error) {
	var verr *planner.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input", Fields: verr.Fields})
	case errors.Is(err, planner.ErrNoProfile), errors.Is(err, planner.ErrNoPlan):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, planner.ErrGenerationInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case planner.IsFatalStructure(err), planner.IsGeneration(err):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		r.logger.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
