package validation

import (
	"fmt"

	"attrition/internal/encoder"
	"attrition/internal/models"
)

// Range is an inclusive integer bound for a form field.
type Range struct {
	Label    string
	Min, Max int
}

// Bounds of the numeric form widgets.
var (
	AgeRange                     = Range{"Age", 18, 60}
	DistanceFromHomeRange        = Range{"Distance From Home", 1, 30}
	MonthlyIncomeRange           = Range{"Monthly Income", 1000, 20000}
	StockOptionLevelRange        = Range{"Stock Option Level", 0, 3}
	EnvironmentSatisfactionRange = Range{"Environment Satisfaction", 1, 4}
	NumCompaniesWorkedRange      = Range{"Num Companies Worked", 0, 9}
	WorkLifeBalanceRange         = Range{"Work-Life Balance", 1, 4}
	YearsAtCompanyRange          = Range{"Years At Company", 0, 40}
	TotalWorkingYearsRange       = Range{"Total Working Years", 0, 40}
	YearsWithCurrManagerRange    = Range{"Years With Current Manager", 0, 17}
)

// Contains reports whether v lies within r.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Message describes the bound for error output.
func (r Range) Message() string {
	return fmt.Sprintf("%s must be between %d and %d", r.Label, r.Min, r.Max)
}

// ValidateProfile checks every form value against its widget. Categorical
// values must be categories of t.
func ValidateProfile(p models.EmployeeProfile, t *encoder.Table) (bool, string) {
	ints := []struct {
		r Range
		v int
	}{
		{AgeRange, p.Age},
		{DistanceFromHomeRange, p.DistanceFromHome},
		{MonthlyIncomeRange, p.MonthlyIncome},
		{StockOptionLevelRange, p.StockOptionLevel},
		{EnvironmentSatisfactionRange, p.EnvironmentSatisfaction},
		{NumCompaniesWorkedRange, p.NumCompaniesWorked},
		{WorkLifeBalanceRange, p.WorkLifeBalance},
		{YearsAtCompanyRange, p.YearsAtCompany},
		{TotalWorkingYearsRange, p.TotalWorkingYears},
		{YearsWithCurrManagerRange, p.YearsWithCurrManager},
	}
	for _, f := range ints {
		if !f.r.Contains(f.v) {
			return false, f.r.Message()
		}
	}

	if p.Gender != models.GenderMale && p.Gender != models.GenderFemale {
		return false, "Gender must be Male or Female"
	}
	if p.OverTime != models.OverTimeYes && p.OverTime != models.OverTimeNo {
		return false, "Works Overtime must be Yes or No"
	}

	cats := []struct {
		label string
		field encoder.Field
		v     string
	}{
		{"Marital Status", encoder.MaritalStatus, p.MaritalStatus},
		{"Department", encoder.Department, p.Department},
		{"Job Role", encoder.JobRole, p.JobRole},
		{"Business Travel", encoder.BusinessTravel, p.BusinessTravel},
	}
	for _, c := range cats {
		if !t.Has(c.field, c.v) {
			return false, fmt.Sprintf("Unknown %s %q", c.label, c.v)
		}
	}

	return true, ""
}
