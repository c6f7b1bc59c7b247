package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"

	"attrition/internal/config"
	"attrition/internal/encoder"
	"attrition/internal/predictor"
)

// stubPredictor returns a fixed prediction and captures the record it saw.
type stubPredictor struct {
	pred predictor.Prediction
	err  error
	seen *encoder.Record
}

func (s *stubPredictor) Predict(_ context.Context, rec encoder.Record) (predictor.Prediction, error) {
	s.seen = &rec
	return s.pred, s.err
}

func newTestApp(t *testing.T, p Predictor) *fiber.App {
	t.Helper()

	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	cfg := &config.Config{SiteTitle: "Attrition Test", SiteTagline: "tagline"}
	h := NewAssessmentHandler(encoder.DefaultTable(), p, nil, cfg)
	app.Get("/", h.Index)
	app.Post("/analyze", h.Analyze)
	return app
}

func validForm() url.Values {
	return url.Values{
		"age":                {"30"},
		"gender":             {"Male"},
		"marital_status":     {"Married"},
		"distance_from_home": {"5"},
		"overtime":           {"No"},
		"department":         {"Research & Development"},
		"job_role":           {"Sales Executive"},
		"monthly_income":     {"5000"},
		"stock_option_level": {"1"},
		"business_travel":    {"Travel_Rarely"},
	}
}

func postForm(t *testing.T, app *fiber.App, form url.Values, htmx bool) (int, string) {
	t.Helper()

	req, _ := http.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestIndex_RendersForm(t *testing.T) {
	app := newTestApp(t, &stubPredictor{})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET / status = %d, want 200: %s", resp.StatusCode, page)
	}
	for _, want := range []string{
		"Attrition Test",
		"Personal Details",
		"Professional Factors",
		"Additional Parameters (Impacts Accuracy)",
		"Analyze Risk",
		`name="age"`,
		`value="Healthcare Representative"`,
		`value="Non-Travel"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("GET / body missing %q", want)
		}
	}
	if strings.Contains(page, "Attrition Risk</strong>") {
		t.Error("GET / rendered a result before any analysis")
	}
}

func TestAnalyze_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		pred     predictor.Prediction
		htmx     bool
		wantText []string
	}{
		{
			name:     "high risk",
			pred:     predictor.Prediction{Class: 1, Probabilities: [2]float64{0.275, 0.725}},
			wantText: []string{"High Attrition Risk", "(Probability: 72.50%)", "likely to leave the company"},
		},
		{
			name:     "low risk shows attrition probability",
			pred:     predictor.Prediction{Class: 0, Probabilities: [2]float64{0.775, 0.225}},
			wantText: []string{"Low Attrition Risk", "(Probability: 22.50%)", "likely to stay"},
		},
		{
			name:     "htmx partial",
			pred:     predictor.Prediction{Class: 1, Probabilities: [2]float64{0.4, 0.6}},
			htmx:     true,
			wantText: []string{"High Attrition Risk", "(Probability: 60.00%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubPredictor{pred: tt.pred}
			app := newTestApp(t, stub)

			status, body := postForm(t, app, validForm(), tt.htmx)
			if status != fiber.StatusOK {
				t.Fatalf("POST /analyze status = %d, want 200: %s", status, body)
			}
			for _, want := range tt.wantText {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q:\n%s", want, body)
				}
			}
			if tt.htmx && strings.Contains(body, "<html") {
				t.Error("HTMX response included the page layout")
			}
			if stub.seen == nil || stub.seen.Len() != len(encoder.Schema) {
				t.Fatalf("predictor did not receive a full record")
			}
		})
	}
}

func TestAnalyze_BuildsRecordFromForm(t *testing.T) {
	stub := &stubPredictor{}
	app := newTestApp(t, stub)

	if status, body := postForm(t, app, validForm(), true); status != fiber.StatusOK {
		t.Fatalf("POST /analyze status = %d: %s", status, body)
	}

	want := map[string]float64{
		"BusinessTravel": 0.709,
		"Department":     0.653,
		"JobRole":        0.221,
		"MaritalStatus":  0.457,
		"EducationField": 0.412,
		"OverTime":       0,
		"Gender":         1,
		"MonthlyIncome":  5000,
		// optional parameters default when not posted
		"EnvironmentSatisfaction": 3,
		"YearsAtCompany":          5,
		"TotalWorkingYears":       10,
	}
	for name, w := range want {
		if got, _ := stub.seen.Get(name); got != w {
			t.Errorf("record %s = %v, want %v", name, got, w)
		}
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f url.Values)
		wantMsg string
	}{
		{"age out of range", func(f url.Values) { f.Set("age", "61") }, "Age must be between 18 and 60"},
		{"age not a number", func(f url.Values) { f.Set("age", "thirty") }, "Age must be a whole number"},
		{"missing income", func(f url.Values) { f.Del("monthly_income") }, "Monthly Income is required"},
		{"missing gender", func(f url.Values) { f.Del("gender") }, "Gender is required"},
		{"unknown role", func(f url.Values) { f.Set("job_role", "Astronaut") }, "Unknown Job Role"},
		{"optional out of range", func(f url.Values) { f.Set("years_with_curr_manager", "18") }, "Years With Current Manager must be between 0 and 17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubPredictor{}
			app := newTestApp(t, stub)
			form := validForm()
			tt.mutate(form)

			status, body := postForm(t, app, form, false)
			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if !strings.Contains(body, tt.wantMsg) {
				t.Errorf("body missing %q", tt.wantMsg)
			}
			if stub.seen != nil {
				t.Error("predictor called for invalid input")
			}

			status, body = postForm(t, app, form, true)
			if status != fiber.StatusOK || !strings.Contains(body, tt.wantMsg) {
				t.Errorf("HTMX status = %d body = %q, want 200 with %q", status, body, tt.wantMsg)
			}
		})
	}
}

func TestAnalyze_ModelUnavailable(t *testing.T) {
	stub := &stubPredictor{err: fmt.Errorf("%w: open rfc.json: no such file", predictor.ErrModelUnavailable)}
	app := newTestApp(t, stub)

	status, body := postForm(t, app, validForm(), false)
	if status != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
	if !strings.Contains(body, "Model unavailable") {
		t.Errorf("body missing model unavailable message:\n%s", body)
	}
}

func TestAnalyze_SchemaMismatch(t *testing.T) {
	stub := &stubPredictor{err: fmt.Errorf("%w: record has 29 fields, model expects 30", predictor.ErrSchemaMismatch)}
	app := newTestApp(t, stub)

	status, body := postForm(t, app, validForm(), false)
	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if !strings.Contains(body, "feature schema mismatch") {
		t.Errorf("body missing schema mismatch message:\n%s", body)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "0.00%"},
		{1, "100.00%"},
		{0.725, "72.50%"},
		{0.12345, "12.35%"},
		{0.5, "50.00%"},
		// rounded from the scaled binary value, ties to even
		{0.72505, "72.50%"},
		{0.00125, "0.12%"},
		{0.00375, "0.38%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.p); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
