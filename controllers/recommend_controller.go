package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/config"
	"tatvadirect/backend/utils"
)

// wait sleeps for d unless the request goes away first.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

type fileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Rows int    `json:"rows"`
}

// NormalizeBOQ accepts an optional file, measures it, and returns the fixed
// normalization result after the configured delay.
func NormalizeBOQ(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var info *fileInfo
		up, err := readUpload(c, cfg.MaxUploadBytes)
		switch {
		case errors.Is(err, errNoFile):
		case err != nil:
			respondUploadError(c, err)
			return
		default:
			info = &fileInfo{Name: up.Name, Size: up.Size}
			if ext, ok := utils.SheetExt(up.Name); ok {
				if rows, err := utils.ReadRows(up.Content, ext); err == nil {
					for _, r := range rows {
						if !utils.IsBlankRow(r) {
							info.Rows++
						}
					}
				}
			}
		}

		if !wait(c.Request.Context(), cfg.NormalizeDelay) {
			return
		}
		items := normalizedItems()
		resp := gin.H{"items": items, "summary": normalizeSummary(c.Request.Context(), cfg, items)}
		if info != nil {
			resp["file"] = info
		}
		c.JSON(http.StatusOK, resp)
	}
}

func normalizeSummary(ctx context.Context, cfg config.Config, items []NormalizedItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.NormalizedName)
	}
	fallback := fmt.Sprintf("Normalized %d items: %s.", len(items), strings.Join(names, ", "))
	if cfg.GeminiAPIKey == "" {
		return fallback
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	prompt := "Write one short, neutral sentence for a construction buyer summarising these normalized BOQ items " +
		"(no emojis): " + strings.Join(names, "; ")
	text, err := utils.Prompt(ctx, utils.AIConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel, MaxTokens: 120}, prompt)
	if err != nil || text == "" {
		if err != nil {
			log.Printf("gemini summary: %v", err)
		}
		return fallback
	}
	return text
}

type rankRequest struct {
	Items []struct {
		ID any `json:"id"`
	} `json:"items" binding:"required"`
}

func RankVendors() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rankRequest
		if !bindJSON(c, &req) {
			return
		}
		itemVendors := make(map[string][]RankedVendor, len(req.Items))
		for _, it := range req.Items {
			id := fmt.Sprint(it.ID)
			itemVendors[id] = rankVendors(id)
		}
		c.JSON(http.StatusOK, gin.H{"itemVendors": itemVendors})
	}
}

func SuggestSubstitutions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"suggestions": substitutions()})
	}
}

// GroupPO groups explicit vendor selections; any other input gets the
// default grouping.
func GroupPO() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SelectedVendors json.RawMessage `json:"selectedVendors"`
			Substitutions   json.RawMessage `json:"substitutions"`
		}
		_ = c.ShouldBindJSON(&req)
		var sel []VendorSelection
		if len(req.SelectedVendors) > 0 && json.Unmarshal(req.SelectedVendors, &sel) == nil {
			if groups := GroupByVendor(sel); len(groups) > 0 {
				c.JSON(http.StatusOK, gin.H{"groups": groups})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"groups": defaultPOGroups()})
	}
}

type createPORequest struct {
	POGroups []json.RawMessage `json:"poGroups" binding:"required"`
}

func CreatePO(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPORequest
		if !bindJSON(c, &req) {
			return
		}
		if !wait(c.Request.Context(), cfg.POCreateDelay) {
			return
		}
		now := time.Now().UnixMilli()
		ids := make([]string, 0, len(req.POGroups))
		for i := range req.POGroups {
			ids = append(ids, fmt.Sprintf("PO-%d-%d", now, i))
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "poIds": ids})
	}
}
