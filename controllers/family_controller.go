package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/services"
)

type FamilyController struct {
	Family *services.FamilyService
}

func NewFamilyController(family *services.FamilyService) *FamilyController {
	return &FamilyController{Family: family}
}

// GET /family
func (fc *FamilyController) List(c *gin.Context) {
	c.JSON(http.StatusOK, fc.Family.List())
}
