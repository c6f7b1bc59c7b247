package encoder

import (
	"attrition/internal/models"
)

// Schema is the ordered list of feature names the classifier was trained on.
var Schema = []string{
	"Age",
	"BusinessTravel",
	"DailyRate",
	"Department",
	"DistanceFromHome",
	"Education",
	"EducationField",
	"EnvironmentSatisfaction",
	"Gender",
	"HourlyRate",
	"JobInvolvement",
	"JobLevel",
	"JobRole",
	"JobSatisfaction",
	"MaritalStatus",
	"MonthlyIncome",
	"MonthlyRate",
	"NumCompaniesWorked",
	"OverTime",
	"PercentSalaryHike",
	"PerformanceRating",
	"RelationshipSatisfaction",
	"StockOptionLevel",
	"TotalWorkingYears",
	"TrainingTimesLastYear",
	"WorkLifeBalance",
	"YearsAtCompany",
	"YearsInCurrentRole",
	"YearsSinceLastPromotion",
	"YearsWithCurrManager",
}

// Values for features the form does not expose. The model sees these for
// every employee.
const (
	DefaultDailyRate                = 800
	DefaultEducation                = 3
	DefaultHourlyRate               = 65
	DefaultJobInvolvement           = 3
	DefaultJobLevel                 = 2
	DefaultJobSatisfaction          = 3
	DefaultMonthlyRate              = 14000
	DefaultPercentSalaryHike        = 15
	DefaultPerformanceRating        = 3
	DefaultRelationshipSatisfaction = 3
	DefaultTrainingTimesLastYear    = 2
	DefaultYearsInCurrentRole       = 2
	DefaultYearsSinceLastPromotion  = 1
)

// Record is a single-row feature vector keyed by Schema.
type Record struct {
	names  []string
	values []float64
}

// NewRecord pairs names with values. Both slices are copied.
func NewRecord(names []string, values []float64) Record {
	return Record{
		names:  append([]string(nil), names...),
		values: append([]float64(nil), values...),
	}
}

// Names returns the feature names in order.
func (r Record) Names() []string {
	return append([]string(nil), r.names...)
}

// Values returns the feature values in the same order as Names.
func (r Record) Values() []float64 {
	return append([]float64(nil), r.values...)
}

// Len returns the number of features.
func (r Record) Len() int {
	return len(r.names)
}

// Get returns the value of the named feature.
func (r Record) Get(name string) (float64, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return 0, false
}

// Build assembles the feature record for p. Categorical fields are frequency
// encoded with t, EducationField always uses the table default, and binary
// choices map to 1 for "Male" and "Yes".
func Build(t *Table, p models.EmployeeProfile) Record {
	byName := map[string]float64{
		"Age":                      float64(p.Age),
		"BusinessTravel":           t.Encode(BusinessTravel, p.BusinessTravel),
		"DailyRate":                DefaultDailyRate,
		"Department":               t.Encode(Department, p.Department),
		"DistanceFromHome":         float64(p.DistanceFromHome),
		"Education":                DefaultEducation,
		"EducationField":           t.Encode(EducationField, t.Default(EducationField)),
		"EnvironmentSatisfaction":  float64(p.EnvironmentSatisfaction),
		"Gender":                   binary(p.Gender == models.GenderMale),
		"HourlyRate":               DefaultHourlyRate,
		"JobInvolvement":           DefaultJobInvolvement,
		"JobLevel":                 DefaultJobLevel,
		"JobRole":                  t.Encode(JobRole, p.JobRole),
		"JobSatisfaction":          DefaultJobSatisfaction,
		"MaritalStatus":            t.Encode(MaritalStatus, p.MaritalStatus),
		"MonthlyIncome":            float64(p.MonthlyIncome),
		"MonthlyRate":              DefaultMonthlyRate,
		"NumCompaniesWorked":       float64(p.NumCompaniesWorked),
		"OverTime":                 binary(p.OverTime == models.OverTimeYes),
		"PercentSalaryHike":        DefaultPercentSalaryHike,
		"PerformanceRating":        DefaultPerformanceRating,
		"RelationshipSatisfaction": DefaultRelationshipSatisfaction,
		"StockOptionLevel":         float64(p.StockOptionLevel),
		"TotalWorkingYears":        float64(p.TotalWorkingYears),
		"TrainingTimesLastYear":    DefaultTrainingTimesLastYear,
		"WorkLifeBalance":          float64(p.WorkLifeBalance),
		"YearsAtCompany":           float64(p.YearsAtCompany),
		"YearsInCurrentRole":       DefaultYearsInCurrentRole,
		"YearsSinceLastPromotion":  DefaultYearsSinceLastPromotion,
		"YearsWithCurrManager":     float64(p.YearsWithCurrManager),
	}

	values := make([]float64, len(Schema))
	for i, name := range Schema {
		values[i] = byName[name]
	}
	return Record{names: append([]string(nil), Schema...), values: values}
}

func binary(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
