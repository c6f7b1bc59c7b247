package models

// Binary form choices.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	OverTimeYes = "Yes"
	OverTimeNo  = "No"
)

// EmployeeProfile holds the values of the attrition form for one employee.
type EmployeeProfile struct {
	// Personal details
	Age              int
	Gender           string
	MaritalStatus    string
	DistanceFromHome int
	OverTime         string

	// Professional factors
	Department       string
	JobRole          string
	MonthlyIncome    int
	StockOptionLevel int
	BusinessTravel   string

	// Additional parameters
	EnvironmentSatisfaction int
	NumCompaniesWorked      int
	WorkLifeBalance         int
	YearsAtCompany          int
	TotalWorkingYears       int
	YearsWithCurrManager    int
}

// DefaultProfile returns the values the form shows before any user input.
func DefaultProfile() EmployeeProfile {
	return EmployeeProfile{
		Age:              30,
		Gender:           GenderMale,
		MaritalStatus:    "Married",
		DistanceFromHome: 5,
		OverTime:         OverTimeYes,

		Department:       "Research & Development",
		JobRole:          "Sales Executive",
		MonthlyIncome:    5000,
		StockOptionLevel: 1,
		BusinessTravel:   "Travel_Rarely",

		EnvironmentSatisfaction: 3,
		NumCompaniesWorked:      1,
		WorkLifeBalance:         3,
		YearsAtCompany:          5,
		TotalWorkingYears:       10,
		YearsWithCurrManager:    3,
	}
}
