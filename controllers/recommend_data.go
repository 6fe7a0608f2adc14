package controllers

import "fmt"

type NormalizedItem struct {
	ID             int     `json:"id"`
	RawName        string  `json:"rawName"`
	NormalizedName string  `json:"normalizedName"`
	Quantity       float64 `json:"quantity"`
	Confidence     float64 `json:"confidence"`
}

type RankedVendor struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	LeadTime int     `json:"leadTime"`
	Rank     int     `json:"rank"`
}

type Substitution struct {
	ID                int     `json:"id"`
	OriginalItem      string  `json:"originalItem"`
	OriginalPrice     float64 `json:"originalPrice"`
	OriginalLeadTime  int     `json:"originalLeadTime"`
	SuggestedItem     string  `json:"suggestedItem"`
	SuggestedPrice    float64 `json:"suggestedPrice"`
	SuggestedLeadTime int     `json:"suggestedLeadTime"`
}

type POLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

type POGroup struct {
	VendorID   string   `json:"vendorId"`
	VendorName string   `json:"vendorName"`
	Total      float64  `json:"total"`
	Items      []POLine `json:"items"`
}

// VendorSelection is one line the buyer assigned to a vendor.
type VendorSelection struct {
	VendorID   string  `json:"vendorId"`
	VendorName string  `json:"vendorName"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
}

func normalizedItems() []NormalizedItem {
	return []NormalizedItem{
		{ID: 1, RawName: "Steel Rod 12mm", NormalizedName: "Steel Reinforcement Bar 12mm", Quantity: 100, Confidence: 0.95},
		{ID: 2, RawName: "Cement OPC 53", NormalizedName: "Ordinary Portland Cement Grade 53", Quantity: 50, Confidence: 0.92},
		{ID: 3, RawName: "Sand Fine", NormalizedName: "Fine Aggregate Sand", Quantity: 200, Confidence: 0.88},
	}
}

// rankVendors returns the fixed vendor shortlist for one BOQ item id.
func rankVendors(itemID string) []RankedVendor {
	return []RankedVendor{
		{ID: fmt.Sprintf("v1-%s", itemID), Name: "BuildMart Supply", Price: 45, LeadTime: 3, Rank: 1},
		{ID: fmt.Sprintf("v2-%s", itemID), Name: "ProConstruct Ltd", Price: 48, LeadTime: 2, Rank: 2},
		{ID: fmt.Sprintf("v3-%s", itemID), Name: "MegaSupply Co", Price: 52, LeadTime: 5, Rank: 3},
	}
}

func substitutions() []Substitution {
	return []Substitution{
		{
			ID: 1, OriginalItem: "Steel Reinforcement Bar 12mm", OriginalPrice: 45, OriginalLeadTime: 3,
			SuggestedItem: "Steel Reinforcement Bar 10mm (Higher Grade)", SuggestedPrice: 38, SuggestedLeadTime: 2,
		},
		{
			ID: 2, OriginalItem: "Ordinary Portland Cement Grade 53", OriginalPrice: 280, OriginalLeadTime: 5,
			SuggestedItem: "Portland Pozzolana Cement", SuggestedPrice: 245, SuggestedLeadTime: 4,
		},
	}
}

func defaultPOGroups() []POGroup {
	return []POGroup{
		{
			VendorID: "v1", VendorName: "BuildMart Supply", Total: 4500,
			Items: []POLine{{Name: "Steel Reinforcement Bar 12mm", Quantity: 100, Price: 45}},
		},
		{
			VendorID: "v2", VendorName: "ProConstruct Ltd", Total: 14000,
			Items: []POLine{{Name: "Ordinary Portland Cement Grade 53", Quantity: 50, Price: 280}},
		},
	}
}

// GroupByVendor buckets selections per vendor id in order of first
// appearance; each group total is the plain sum of quantity x price.
func GroupByVendor(sel []VendorSelection) []POGroup {
	groups := []POGroup{}
	idx := map[string]int{}
	for _, s := range sel {
		if s.VendorID == "" {
			continue
		}
		i, ok := idx[s.VendorID]
		if !ok {
			i = len(groups)
			idx[s.VendorID] = i
			groups = append(groups, POGroup{VendorID: s.VendorID, VendorName: s.VendorName, Items: []POLine{}})
		}
		groups[i].Items = append(groups[i].Items, POLine{Name: s.Name, Quantity: s.Quantity, Price: s.Price})
		groups[i].Total += s.Quantity * s.Price
	}
	return groups
}
