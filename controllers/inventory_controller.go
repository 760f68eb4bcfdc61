package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
	"github.com/n8hotnews-a11y/Smart-Frigde/services"
	"github.com/n8hotnews-a11y/Smart-Frigde/utils"
)

const dateLayout = "2006-01-02"

type InventoryController struct {
	Inv *services.InventoryService
	Rec *services.RecognizeService

	CriticalDays int
	WarningDays  int
}

func NewInventoryController(inv *services.InventoryService, rec *services.RecognizeService, criticalDays, warningDays int) *InventoryController {
	return &InventoryController{Inv: inv, Rec: rec, CriticalDays: criticalDays, WarningDays: warningDays}
}

type FoodItemInput struct {
	Name        string `json:"name" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	ExpiryDate  string `json:"expiryDate" binding:"required"`
	Storage     string `json:"storage" binding:"required"`
	ImageBase64 string `json:"imageBase64"`
}

// itemView is a FoodItem plus the derived expiry fields the cards display.
type itemView struct {
	models.FoodItem
	DaysLeft int           `json:"daysLeft"`
	Urgency  utils.Urgency `json:"urgency"`
}

func (ic *InventoryController) view(item models.FoodItem, now time.Time) itemView {
	days := utils.DaysUntilExpiry(now, item.ExpiryDate)
	return itemView{
		FoodItem: item,
		DaysLeft: days,
		Urgency:  utils.ClassifyUrgency(days, ic.CriticalDays, ic.WarningDays),
	}
}

// GET /inventory — items grouped by storage location, soonest expiry first.
func (ic *InventoryController) List(c *gin.Context) {
	now := time.Now()
	grouped := ic.Inv.GroupByStorage()

	out := make(map[models.StorageLocation][]itemView, len(grouped))
	for storage, items := range grouped {
		views := make([]itemView, 0, len(items))
		for _, it := range items {
			views = append(views, ic.view(it, now))
		}
		out[storage] = views
	}
	c.JSON(http.StatusOK, out)
}

func (ic *InventoryController) parseInput(c *gin.Context) (models.FoodItem, bool) {
	var input FoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.FoodItem{}, false
	}

	expiry, err := time.Parse(dateLayout, input.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiryDate must be YYYY-MM-DD"})
		return models.FoodItem{}, false
	}

	storage := models.StorageLocation(input.Storage)
	if !storage.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown storage location"})
		return models.FoodItem{}, false
	}

	item := models.FoodItem{
		Name:       input.Name,
		Quantity:   input.Quantity,
		ExpiryDate: expiry,
		Storage:    storage,
	}

	if input.ImageBase64 != "" {
		url, err := utils.UploadItemImage(input.ImageBase64)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return models.FoodItem{}, false
		}
		item.ImageURL = url
	}
	return item, true
}

// POST /inventory
func (ic *InventoryController) Create(c *gin.Context) {
	item, ok := ic.parseInput(c)
	if !ok {
		return
	}
	stored := ic.Inv.Add(item)
	c.JSON(http.StatusCreated, ic.view(stored, time.Now()))
}

// PUT /inventory/:id
func (ic *InventoryController) Update(c *gin.Context) {
	id := c.Param("id")
	existing, found := ic.Inv.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	item, ok := ic.parseInput(c)
	if !ok {
		return
	}
	item.ID = id
	if item.ImageURL == "" {
		item.ImageURL = existing.ImageURL
	}
	ic.Inv.Update(item)
	c.JSON(http.StatusOK, ic.view(item, time.Now()))
}

// DELETE /inventory/:id — idempotent, deleting twice is fine.
func (ic *InventoryController) Delete(c *gin.Context) {
	ic.Inv.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// GET /inventory/expiring
func (ic *InventoryController) Expiring(c *gin.Context) {
	now := time.Now()
	items := ic.Inv.ListExpiringSoon(now)
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		views = append(views, ic.view(it, now))
	}
	c.JSON(http.StatusOK, views)
}

type imageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /inventory/image — upload a photo ahead of the add form.
func (ic *InventoryController) UploadImage(c *gin.Context) {
	var req imageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	url, err := utils.UploadItemImage(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// POST /inventory/recognize — suggest an item name from a photo.
func (ic *InventoryController) Recognize(c *gin.Context) {
	var req imageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if ic.Rec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recognition not configured"})
		return
	}
	name, labels, err := ic.Rec.SuggestName(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestedName": name, "labels": labels})
}
