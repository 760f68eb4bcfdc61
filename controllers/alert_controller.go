package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/services"
)

type AlertController struct {
	Alerts *services.AlertService
}

func NewAlertController(alerts *services.AlertService) *AlertController {
	return &AlertController{Alerts: alerts}
}

// GET /alerts — the current expiry alerts, computed fresh. Read-only.
func (ac *AlertController) List(c *gin.Context) {
	c.JSON(http.StatusOK, ac.Alerts.ScanExpiring(time.Now()))
}

// POST /alerts/digest — email the signed-in user their expiry digest.
func (ac *AlertController) SendDigest(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no email on session"})
		return
	}
	if err := ac.Alerts.SendDigest(time.Now(), email); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "digest sent", "to": email})
}
