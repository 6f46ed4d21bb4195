package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsck45/social-network-api/apperrors"
	"github.com/jsck45/social-network-api/services"
)

type ThoughtController struct {
	thoughts *services.ThoughtService
}

func NewThoughtController(thoughts *services.ThoughtService) *ThoughtController {
	return &ThoughtController{thoughts: thoughts}
}

func (tc *ThoughtController) GetThoughts(c *gin.Context) {
	thoughts, err := tc.thoughts.ListThoughts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thoughts": thoughts})
}

func (tc *ThoughtController) GetSingleThought(c *gin.Context) {
	thought, err := tc.thoughts.GetThought(c.Request.Context(), c.Param("thoughtId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thought": thought})
}

func (tc *ThoughtController) CreateThought(c *gin.Context) {
	var input services.CreateThoughtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thought, err := tc.thoughts.CreateThought(c.Request.Context(), input)

	// a partial cascade still carries the committed thought
	var partial *apperrors.PartialCascadeError
	if errors.As(err, &partial) && thought != nil {
		c.JSON(http.StatusCreated, gin.H{"thought": thought, "warning": partial.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"thought": thought})
}

func (tc *ThoughtController) UpdateThought(c *gin.Context) {
	var input struct {
		ThoughtText string `json:"thoughtText"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thought, err := tc.thoughts.UpdateThought(c.Request.Context(), c.Param("thoughtId"), input.ThoughtText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thought": thought})
}

func (tc *ThoughtController) DeleteThought(c *gin.Context) {
	report, err := tc.thoughts.DeleteThought(c.Request.Context(), c.Param("thoughtId"))

	var partial *apperrors.PartialCascadeError
	if errors.As(err, &partial) && report != nil {
		c.JSON(http.StatusOK, gin.H{"message": "thought successfully deleted", "cascade": report, "warning": partial.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "thought successfully deleted", "cascade": report})
}

func (tc *ThoughtController) AddReaction(c *gin.Context) {
	var input services.AddReactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thought, err := tc.thoughts.AddReaction(c.Request.Context(), c.Param("thoughtId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thought": thought})
}

func (tc *ThoughtController) RemoveReaction(c *gin.Context) {
	thought, err := tc.thoughts.RemoveReaction(c.Request.Context(), c.Param("thoughtId"), c.Param("reactionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"thought": thought})
}
