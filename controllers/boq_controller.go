package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tatvadirect/backend/config"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

type boqResponse struct {
	models.BOQ
	ItemCount            int `json:"itemCount"`
	CompletionPercentage int `json:"completionPercentage"`
}

func newBOQResponse(b models.BOQ) boqResponse {
	return boqResponse{BOQ: b, ItemCount: b.ItemCount(), CompletionPercentage: b.CompletionPercentage()}
}

func ListBOQs(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		boqs, err := store.ListBOQsByServiceProvider(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		out := make([]boqResponse, 0, len(boqs))
		for _, b := range boqs {
			out = append(out, newBOQResponse(b))
		}
		c.JSON(http.StatusOK, gin.H{"boqs": out})
	}
}

func CreateBOQ(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BOQCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		b := &models.BOQ{
			ServiceProvider: u.ID,
			Name:            strings.TrimSpace(req.Name),
			Description:     strings.TrimSpace(req.Description),
			Project:         req.Project,
			Items:           make([]models.BOQItem, 0, len(req.Items)),
			Status:          models.BOQStatusDraft,
			IsActive:        true,
		}
		for _, it := range req.Items {
			b.Items = append(b.Items, models.BOQItem{
				ID:             uuid.NewString(),
				Description:    strings.TrimSpace(it.Description),
				Quantity:       it.Quantity,
				Unit:           it.Unit,
				Rate:           it.Rate,
				Amount:         it.Amount,
				Category:       it.Category,
				Specifications: it.Specifications,
			})
		}
		b.AddProcessingLog("created", fmt.Sprintf("%d items", len(b.Items)), u.ID)
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.CreateBOQ(ctx, b); err != nil {
			respondStoreError(c, err, "BOQ not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "BOQ created successfully", "boq": newBOQResponse(*b)})
	}
}

// ImportBOQ builds a draft BOQ from an uploaded sheet. The optional form
// field "name" overrides the name derived from the file.
func ImportBOQ(cfg config.Config, store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		up, err := readUpload(c, cfg.MaxUploadBytes)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		ext, ok := utils.SheetExt(up.Name)
		if !ok {
			respondError(c, http.StatusBadRequest, utils.ErrUnsupportedSheet.Error())
			return
		}
		rows, err := utils.ReadRows(up.Content, ext)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read spreadsheet")
			return
		}
		items, err := parseBOQRows(rows)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not detect a description column")
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(up.Name), filepath.Ext(up.Name))
		}
		if r := []rune(name); len(r) > models.MaxNameLength {
			name = string(r[:models.MaxNameLength])
		}
		u := middlewares.CurrentUser(c)
		b := &models.BOQ{
			ServiceProvider: u.ID,
			Name:            name,
			Items:           items,
			Status:          models.BOQStatusDraft,
			UploadedFile: &models.UploadedFile{
				Filename:     uuid.NewString() + ext,
				OriginalName: up.Name,
				Size:         up.Size,
				Mimetype:     up.Mimetype,
			},
			IsActive: true,
		}
		b.AddProcessingLog("imported", fmt.Sprintf("%d items from %s", len(items), up.Name), u.ID)
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.CreateBOQ(ctx, b); err != nil {
			respondStoreError(c, err, "BOQ not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "BOQ imported successfully", "boq": newBOQResponse(*b)})
	}
}

func GetBOQ(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		b, err := store.GetBOQ(ctx, u.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, err, "BOQ not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"boq": newBOQResponse(*b)})
	}
}

func UpdateBOQStatus(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BOQStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		b, err := store.GetBOQ(ctx, u.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, err, "BOQ not found")
			return
		}
		b.SetStatus(req.Status, u.ID, req.Details)
		if err := store.UpdateBOQ(ctx, b); err != nil {
			respondStoreError(c, err, "BOQ not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "BOQ status updated successfully", "boq": newBOQResponse(*b)})
	}
}
