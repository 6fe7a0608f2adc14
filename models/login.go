package models

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Company  string `json:"company"`
	UserType string `json:"userType" binding:"omitempty,oneof=service_provider supplier"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

type ProfileUpdateRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=1"`
	Company      *string   `json:"company"`
	CompanyName  *string   `json:"companyName"`
	Phone        *string   `json:"phone"`
	Address      *Address  `json:"address"`
	GSTIN        *string   `json:"gstin"`
	Projects     []Project `json:"projects"`
	MainGSTIN    *string   `json:"mainGstin"`
	BusinessType *string   `json:"businessType"`
	Branches     []Branch  `json:"branches"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type UserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// Apply copies the set fields onto u. Email, user type and password are
// never touched here.
func (r ProfileUpdateRequest) Apply(u *User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.CompanyName != nil {
		u.Company = *r.CompanyName
	}
	if r.Company != nil {
		u.Company = *r.Company
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.Address != nil {
		u.Address = *r.Address
	}
	if r.GSTIN != nil {
		u.Profile.GSTIN = *r.GSTIN
	}
	if r.Projects != nil {
		u.Profile.Projects = r.Projects
	}
	if r.MainGSTIN != nil {
		u.Profile.MainGSTIN = *r.MainGSTIN
	}
	if r.BusinessType != nil {
		u.Profile.BusinessType = *r.BusinessType
	}
	if r.Branches != nil {
		u.Profile.Branches = r.Branches
	}
}
