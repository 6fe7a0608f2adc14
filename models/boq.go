package models

import (
	"math"
	"time"
)

type BOQProject struct {
	Name           string  `json:"name,omitempty"`
	Location       string  `json:"location,omitempty"`
	Type           string  `json:"type,omitempty"`
	EstimatedValue float64 `json:"estimatedValue,omitempty"`
}

type Alternative struct {
	Product       string  `json:"product"`
	MatchScore    float64 `json:"matchScore"`
	PriceVariance float64 `json:"priceVariance"`
}

type BOQItem struct {
	ID                string        `json:"id"`
	Description       string        `json:"description"`
	Quantity          float64       `json:"quantity"`
	Unit              string        `json:"unit"`
	Rate              float64       `json:"rate"`
	Amount            float64       `json:"amount"`
	Category          string        `json:"category,omitempty"`
	Specifications    string        `json:"specifications,omitempty"`
	NormalizedProduct string        `json:"normalizedProduct,omitempty"`
	Alternatives      []Alternative `json:"alternatives,omitempty"`
}

// LineValue is the stored amount, or quantity x rate when no amount was given.
func (it BOQItem) LineValue() float64 {
	if it.Amount != 0 {
		return it.Amount
	}
	return it.Quantity * it.Rate
}

type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
}

type ProcessingLogEntry struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
	User      string    `json:"user,omitempty"`
}

type BOQ struct {
	ID              string               `json:"id"`
	ServiceProvider string               `json:"serviceProvider"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Project         BOQProject           `json:"project"`
	Items           []BOQItem            `json:"items"`
	Status          string               `json:"status"`
	TotalValue      float64              `json:"totalValue"`
	NormalizedAt    *time.Time           `json:"normalizedAt,omitempty"`
	CompletedAt     *time.Time           `json:"completedAt,omitempty"`
	UploadedFile    *UploadedFile        `json:"uploadedFile,omitempty"`
	ProcessingLog   []ProcessingLogEntry `json:"processingLog"`
	IsActive        bool                 `json:"isActive"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// RecalculateTotal derives TotalValue from the items. Called on every save.
func (b *BOQ) RecalculateTotal() {
	var total float64
	for _, it := range b.Items {
		total += it.LineValue()
	}
	b.TotalValue = total
}

func (b *BOQ) ItemCount() int { return len(b.Items) }

func (b *BOQ) CompletionPercentage() int {
	if len(b.Items) == 0 {
		return 0
	}
	n := 0
	for _, it := range b.Items {
		if it.NormalizedProduct != "" {
			n++
		}
	}
	return int(math.Round(float64(n) * 100 / float64(len(b.Items))))
}

func (b *BOQ) AddProcessingLog(action, details, userID string) {
	b.ProcessingLog = append(b.ProcessingLog, ProcessingLogEntry{
		Action:    action,
		Timestamp: time.Now().UTC(),
		Details:   details,
		User:      userID,
	})
}

// SetStatus assigns any status and stamps the matching milestone.
func (b *BOQ) SetStatus(status, userID, details string) {
	now := time.Now().UTC()
	b.Status = status
	switch status {
	case BOQStatusNormalized:
		b.NormalizedAt = &now
	case BOQStatusCompleted:
		b.CompletedAt = &now
	}
	b.AddProcessingLog("status:"+status, details, userID)
}

func IsBOQStatus(s string) bool {
	switch s {
	case BOQStatusDraft, BOQStatusProcessing, BOQStatusNormalized,
		BOQStatusVendorSelection, BOQStatusCompleted, BOQStatusCancelled:
		return true
	}
	return false
}
