package company

// CreateCompanyRequest - DTO for creating a company
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

// UpdateCompanyRequest - DTO for a partial company update
type UpdateCompanyRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	LogoURL      *string `json:"logo,omitempty"`
	CoverImage   *string `json:"coverImage,omitempty"`
	Mail         *string `json:"mail,omitempty"`
	Website      *string `json:"website,omitempty"`
	LinkedIn     *string `json:"linkedIn,omitempty"`
	AddressLine1 *string `json:"address_line_1,omitempty"`
	AddressLine2 *string `json:"address_line_2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Zipcode      *string `json:"zipcode,omitempty"`
	Overview     *string `json:"overview,omitempty"`
	WhyJoinUs    *string `json:"whyJoinUs,omitempty"`
}
