package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"attrition/internal/config"
	"attrition/internal/encoder"
	"attrition/internal/metrics"
	"attrition/internal/models"
	"attrition/internal/predictor"
	"attrition/internal/validation"
)

// Predictor scores one feature record.
type Predictor interface {
	Predict(ctx context.Context, rec encoder.Record) (predictor.Prediction, error)
}

// AssessmentHandler serves the attrition form and its "Analyze Risk" action.
type AssessmentHandler struct {
	table     *encoder.Table
	predictor Predictor
	recorder  *metrics.Recorder
	cfg       *config.Config
}

// NewAssessmentHandler creates a new assessment handler. recorder may be nil.
func NewAssessmentHandler(table *encoder.Table, p Predictor, recorder *metrics.Recorder, cfg *config.Config) *AssessmentHandler {
	return &AssessmentHandler{table: table, predictor: p, recorder: recorder, cfg: cfg}
}

// Index renders the form with its default values.
func (h *AssessmentHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.pageData(models.DefaultProfile(), nil, ""))
}

// Analyze scores the submitted form and renders the outcome.
func (h *AssessmentHandler) Analyze(c fiber.Ctx) error {
	start := time.Now()

	profile, msg := parseProfile(c)
	if msg == "" {
		_, msg = validation.ValidateProfile(profile, h.table)
	}
	if msg != "" {
		return h.renderError(c, profile, fiber.StatusBadRequest, msg)
	}

	rec := encoder.Build(h.table, profile)
	pred, err := h.predictor.Predict(c.Context(), rec)
	if err != nil {
		switch {
		case errors.Is(err, predictor.ErrModelUnavailable):
			slog.Error("assessment failed", "error", err)
			h.recorder.RecordOutcome(models.OutcomeUnavailable, time.Since(start))
			return h.renderError(c, profile, fiber.StatusServiceUnavailable,
				"Model unavailable: the attrition model could not be loaded. Please contact the administrator.")
		case errors.Is(err, predictor.ErrSchemaMismatch):
			slog.Error("assessment failed", "error", err)
			h.recorder.RecordOutcome(models.OutcomeError, time.Since(start))
			return h.renderError(c, profile, fiber.StatusInternalServerError,
				"The model does not accept this feature record: "+err.Error())
		default:
			h.recorder.RecordOutcome(models.OutcomeError, time.Since(start))
			return err
		}
	}

	assessment := &models.Assessment{
		ID:          uuid.New(),
		HighRisk:    pred.Class == 1,
		Probability: FormatPercent(pred.Attrition()),
		CreatedAt:   time.Now(),
	}
	h.recorder.RecordOutcome(assessment.Outcome(), time.Since(start))

	slog.Info("attrition assessment",
		"id", assessment.ID,
		"outcome", assessment.Outcome(),
		"p_attrition", pred.Attrition(),
		"duration", time.Since(start),
	)

	if isHTMX(c) {
		return c.Render("partials/result", fiber.Map{
			"Assessment": assessment,
		}, "")
	}
	return c.Render("index", h.pageData(profile, assessment, ""))
}

// renderError shows msg in place of the result.
func (h *AssessmentHandler) renderError(c fiber.Ctx, profile models.EmployeeProfile, status int, msg string) error {
	if isHTMX(c) {
		return htmxError(c, msg)
	}
	return c.Status(status).Render("index", h.pageData(profile, nil, msg))
}

func (h *AssessmentHandler) pageData(profile models.EmployeeProfile, assessment *models.Assessment, errMsg string) fiber.Map {
	return MergeBranding(fiber.Map{
		"Profile":    profile,
		"Assessment": assessment,
		"Error":      errMsg,

		"GenderOptions":         []string{models.GenderMale, models.GenderFemale},
		"OverTimeOptions":       []string{models.OverTimeYes, models.OverTimeNo},
		"MaritalStatusOptions":  h.table.Categories(encoder.MaritalStatus),
		"DepartmentOptions":     h.table.Categories(encoder.Department),
		"JobRoleOptions":        h.table.Categories(encoder.JobRole),
		"BusinessTravelOptions": h.table.Categories(encoder.BusinessTravel),

		"Ranges": fiber.Map{
			"Age":                     validation.AgeRange,
			"DistanceFromHome":        validation.DistanceFromHomeRange,
			"MonthlyIncome":           validation.MonthlyIncomeRange,
			"StockOptionLevel":        validation.StockOptionLevelRange,
			"EnvironmentSatisfaction": validation.EnvironmentSatisfactionRange,
			"NumCompaniesWorked":      validation.NumCompaniesWorkedRange,
			"WorkLifeBalance":         validation.WorkLifeBalanceRange,
			"YearsAtCompany":          validation.YearsAtCompanyRange,
			"TotalWorkingYears":       validation.TotalWorkingYearsRange,
			"YearsWithCurrManager":    validation.YearsWithCurrManagerRange,
		},
	}, h.cfg)
}

// parseProfile reads the form. Personal and professional fields are required;
// the additional parameters fall back to the form defaults.
func parseProfile(c fiber.Ctx) (models.EmployeeProfile, string) {
	p := models.DefaultProfile()
	var err error

	required := []struct {
		key   string
		label string
		dst   *int
	}{
		{"age", "Age", &p.Age},
		{"distance_from_home", "Distance From Home", &p.DistanceFromHome},
		{"monthly_income", "Monthly Income", &p.MonthlyIncome},
		{"stock_option_level", "Stock Option Level", &p.StockOptionLevel},
	}
	for _, f := range required {
		if *f.dst, err = formInt(c, f.key, f.label, nil); err != nil {
			return p, err.Error()
		}
	}

	optional := []struct {
		key   string
		label string
		dst   *int
	}{
		{"environment_satisfaction", "Environment Satisfaction", &p.EnvironmentSatisfaction},
		{"num_companies_worked", "Num Companies Worked", &p.NumCompaniesWorked},
		{"work_life_balance", "Work-Life Balance", &p.WorkLifeBalance},
		{"years_at_company", "Years At Company", &p.YearsAtCompany},
		{"total_working_years", "Total Working Years", &p.TotalWorkingYears},
		{"years_with_curr_manager", "Years With Current Manager", &p.YearsWithCurrManager},
	}
	for _, f := range optional {
		fallback := *f.dst
		if *f.dst, err = formInt(c, f.key, f.label, &fallback); err != nil {
			return p, err.Error()
		}
	}

	choices := []struct {
		key   string
		label string
		dst   *string
	}{
		{"gender", "Gender", &p.Gender},
		{"marital_status", "Marital Status", &p.MaritalStatus},
		{"overtime", "Works Overtime", &p.OverTime},
		{"department", "Department", &p.Department},
		{"job_role", "Job Role", &p.JobRole},
		{"business_travel", "Business Travel", &p.BusinessTravel},
	}
	for _, f := range choices {
		v := strings.TrimSpace(c.FormValue(f.key))
		if v == "" {
			return p, f.label + " is required"
		}
		*f.dst = v
	}

	return p, ""
}

// formInt parses an integer form value. An empty value yields fallback, or
// an error when fallback is nil.
func formInt(c fiber.Ctx, key, label string, fallback *int) (int, error) {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		if fallback == nil {
			return 0, fmt.Errorf("%s is required", label)
		}
		return *fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	return n, nil
}

// FormatPercent renders a probability as a percentage with two decimals.
// p is scaled to a percentage in float64 first, then the exact binary value
// of that percentage is rounded half to even: 0.72505 gives 72.50% and
// 0.00125 (exactly 0.125 after scaling) gives 0.12%.
func FormatPercent(p float64) string {
	r := new(big.Rat)
	if r.SetFloat64(p*100) == nil {
		return "n/a"
	}
	r.Mul(r, big.NewRat(100, 1))

	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	twice := new(big.Int).Lsh(new(big.Int).Abs(m), 1)
	if c := twice.Cmp(r.Denom()); c > 0 || (c == 0 && q.Bit(0) == 1) {
		if r.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return decimal.NewFromBigInt(q, -2).StringFixed(2) + "%"
}
