package company

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Company is a recruiter's organisation profile, owned by the user who created it
type Company struct {
	ID           kernel.CompanyID `json:"id"`
	UserID       kernel.UserID    `json:"userId"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	LogoURL      string           `json:"logo,omitempty"`
	CoverImage   string           `json:"coverImage,omitempty"`
	Mail         string           `json:"mail,omitempty"`
	Website      string           `json:"website,omitempty"`
	LinkedIn     string           `json:"linkedIn,omitempty"`
	AddressLine1 string           `json:"address_line_1,omitempty"`
	AddressLine2 string           `json:"address_line_2,omitempty"`
	City         string           `json:"city,omitempty"`
	State        string           `json:"state,omitempty"`
	Zipcode      string           `json:"zipcode,omitempty"`
	Overview     string           `json:"overview,omitempty"`
	WhyJoinUs    string           `json:"whyJoinUs,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// IsOwnedBy checks whether the user created the company
func (c *Company) IsOwnedBy(userID kernel.UserID) bool {
	return !userID.IsEmpty() && c.UserID == userID
}

// Apply copies the non-nil fields of the request onto the company
func (c *Company) Apply(req UpdateCompanyRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&c.Name, req.Name)
	set(&c.Description, req.Description)
	set(&c.LogoURL, req.LogoURL)
	set(&c.CoverImage, req.CoverImage)
	set(&c.Mail, req.Mail)
	set(&c.Website, req.Website)
	set(&c.LinkedIn, req.LinkedIn)
	set(&c.AddressLine1, req.AddressLine1)
	set(&c.AddressLine2, req.AddressLine2)
	set(&c.City, req.City)
	set(&c.State, req.State)
	set(&c.Zipcode, req.Zipcode)
	set(&c.Overview, req.Overview)
	set(&c.WhyJoinUs, req.WhyJoinUs)
	c.UpdatedAt = time.Now()
}
