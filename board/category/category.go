package category

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Category is reference data used to classify jobs
type Category struct {
	ID        kernel.CategoryID `db:"id" json:"id"`
	Name      string            `db:"name" json:"name"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `db:"updated_at" json:"updatedAt"`
}

// DefaultNames is the category list inserted by the seed command
var DefaultNames = []string{
	"Software Development",
	"Web Development",
	"Mobile Development",
	"Data Science",
	"Machine Learning",
	"Artificial Intelligence",
	"DevOps",
	"Cloud Computing",
	"Cybersecurity",
	"Database Administration",
	"Network Engineering",
	"Quality Assurance",
	"UI/UX Design",
	"Graphic Design",
	"Product Management",
	"Project Management",
	"Business Analysis",
	"Digital Marketing",
	"Content Writing",
	"Sales",
	"Customer Support",
	"Human Resources",
	"Finance",
	"Accounting",
	"Legal",
	"Healthcare",
	"Education",
	"Engineering",
	"Manufacturing",
	"Logistics",
	"Hospitality",
	"Retail",
	"Real Estate",
	"Consulting",
	"Research",
	"Administration",
}
