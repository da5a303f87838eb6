package skill

import (
	"time"

	"github.com/google/uuid"
)

// Category is the fixed classification taxonomy for canonical skills.
type Category string

const (
	CategoryProgrammingLanguage Category = "Programming Language"
	CategoryFrontend            Category = "Frontend"
	CategoryBackend             Category = "Backend"
	CategoryMobile              Category = "Mobile Development"
	CategoryDatabase            Category = "Database"
	CategoryDevOps              Category = "DevOps"
	CategoryCloud               Category = "Cloud"
	CategoryDataScience         Category = "Data Science"
	CategoryMachineLearning     Category = "Machine Learning"
	CategoryCybersecurity       Category = "Cybersecurity"
	CategoryNetworking          Category = "Networking"
	CategoryQATesting           Category = "QA & Testing"
	CategoryGameDevelopment     Category = "Game Development"
	CategoryEmbedded            Category = "Embedded Systems"
	CategoryBlockchain          Category = "Blockchain"
	CategoryITSupport           Category = "IT Support"

	CategoryGraphicDesign   Category = "Graphic Design"
	CategoryUXDesign        Category = "UX Design"
	CategoryVideoProduction Category = "Video Production"
	CategoryPhotography     Category = "Photography"
	CategoryWriting         Category = "Writing"
	CategoryContentCreation Category = "Content Creation"
	CategoryMusic           Category = "Music"

	CategoryProjectManagement Category = "Project Management"
	CategoryProductManagement Category = "Product Management"
	CategoryMarketing         Category = "Marketing"
	CategorySales             Category = "Sales"
	CategoryCustomerService   Category = "Customer Service"
	CategoryHumanResources    Category = "Human Resources"
	CategoryBusinessAnalysis  Category = "Business Analysis"
	CategoryOperations        Category = "Operations"
	CategoryConsulting        Category = "Consulting"
	CategoryAdministration    Category = "Administration"

	CategoryAccounting Category = "Accounting"
	CategoryFinance    Category = "Finance"
	CategoryInvestment Category = "Investment"
	CategoryInsurance  Category = "Insurance"
	CategoryBanking    Category = "Banking"

	CategoryLegal      Category = "Legal"
	CategoryCompliance Category = "Compliance"

	CategoryNursing           Category = "Nursing"
	CategoryMedicine          Category = "Medicine"
	CategoryPharmacy          Category = "Pharmacy"
	CategoryMentalHealth      Category = "Mental Health"
	CategoryPublicHealth      Category = "Public Health"
	CategoryMedicalTechnology Category = "Medical Technology"

	CategoryMechanicalEngineering Category = "Mechanical Engineering"
	CategoryElectricalEngineering Category = "Electrical Engineering"
	CategoryCivilEngineering      Category = "Civil Engineering"
	CategoryResearch              Category = "Research"
	CategoryLaboratory            Category = "Laboratory"

	CategoryTeaching Category = "Teaching"
	CategoryTraining Category = "Training"

	CategoryConstruction  Category = "Construction"
	CategoryManufacturing Category = "Manufacturing"
	CategoryLogistics     Category = "Logistics"
	CategoryHospitality   Category = "Hospitality"
	CategoryCulinary      Category = "Culinary"
	CategoryRetail        Category = "Retail"
	CategoryRealEstate    Category = "Real Estate"
	CategoryAgriculture   Category = "Agriculture"
	CategoryLanguage      Category = "Language"

	CategoryOther Category = "Other"
)

// Source records where a user picked up a skill.
type Source string

const (
	SourceWorkExperience Source = "work_experience"
	SourceEducation      Source = "education"
	SourceCertification  Source = "certification"
	SourceOther          Source = "other"
)

// Skill is a canonical, user-independent taxonomy entry. The canonical name
// is unique case-insensitively; entries are created lazily and never deleted
// by the reconciliation flow.
type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	Description string
	CreatedAt   time.Time
}

// Alias maps an alternative spelling or a detail variant (e.g. "React (Native)")
// to its canonical skill. An alias string belongs to at most one skill.
type Alias struct {
	ID      uuid.UUID
	SkillID uuid.UUID
	Alias   string
}

// UserSkillAssignment links a user to a canonical skill. At most one
// assignment exists per (user, skill) pair.
type UserSkillAssignment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	ProficiencyLevel *int16
	YearsExperience  *int16
	Source           Source
	Note             string
	WorkHistoryID    *uuid.UUID
	CreatedAt        time.Time
}
