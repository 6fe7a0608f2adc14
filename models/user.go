package models

import "time"

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

type Project struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
}

type Branch struct {
	Name    string  `json:"name"`
	GSTIN   string  `json:"gstin,omitempty"`
	Address Address `json:"address"`
}

// UserProfile holds role specific details: gstin/projects for buyers,
// mainGstin/businessType/branches for suppliers.
type UserProfile struct {
	GSTIN        string    `json:"gstin,omitempty"`
	Projects     []Project `json:"projects,omitempty"`
	MainGSTIN    string    `json:"mainGstin,omitempty"`
	BusinessType string    `json:"businessType,omitempty"`
	Branches     []Branch  `json:"branches,omitempty"`
}

type User struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	Password          string      `json:"-"`
	UserType          string      `json:"userType"`
	Company           string      `json:"company"`
	Phone             string      `json:"phone"`
	Address           Address     `json:"address"`
	Profile           UserProfile `json:"profile"`
	IsActive          bool        `json:"isActive"`
	EmailVerified     bool        `json:"emailVerified"`
	LastLogin         *time.Time  `json:"lastLogin"`
	PasswordChangedAt *time.Time  `json:"passwordChangedAt,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

func (u *User) IsAdmin(adminEmail string) bool {
	return u.UserType == UserTypeAdmin || (adminEmail != "" && u.Email == adminEmail)
}

// DisplayName is what other parties see for this account.
func (u *User) DisplayName() string {
	if u.Company != "" {
		return u.Company
	}
	return u.Name
}

// ProfileView returns the role shaped profile payload.
func (u *User) ProfileView() map[string]any {
	p := map[string]any{
		"userId":        u.ID,
		"name":          u.Name,
		"companyName":   u.Company,
		"contactPerson": u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"address":       u.Address,
		"userType":      u.UserType,
		"createdAt":     u.CreatedAt,
		"updatedAt":     u.UpdatedAt,
	}
	if u.UserType == UserTypeServiceProvider {
		projects := u.Profile.Projects
		if projects == nil {
			projects = []Project{}
		}
		p["gstin"] = u.Profile.GSTIN
		p["projects"] = projects
		return p
	}
	branches := u.Profile.Branches
	if branches == nil {
		branches = []Branch{}
	}
	p["mainGstin"] = u.Profile.MainGSTIN
	p["businessType"] = u.Profile.BusinessType
	p["branches"] = branches
	return p
}
