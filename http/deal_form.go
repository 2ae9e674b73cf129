package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"deal-calculator/domain"
)

const (
	defaultGrowthRate      = 0.0
	defaultEarnOutYears    = 1
	defaultSellerFinancing = 0.0
	defaultAllCash         = 0.0
	defaultTaxRate         = 20.0
	defaultInterestRate    = 0.0

	maxAnnualRevenue = 1e12
	maxGrowthRate    = 1000.0
	maxInterestRate  = 1000.0
	splitTolerance  = 1e-9
)

var dealFormSchema = mustCompileSchema(map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]interface{}{
		"annualRevenue":          map[string]interface{}{"type": "number", "exclusiveMinimum": 0, "maximum": maxAnnualRevenue},
		"churnRate":              percentProperty(),
		"growthRate":             map[string]interface{}{"type": "number", "minimum": 0, "maximum": maxGrowthRate},
		"earnOutPercent":         percentProperty(),
		"earnOutYears":           map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 10},
		"sellerFinancingPercent": percentProperty(),
		"allCashPercent":         percentProperty(),
		"taxRate":                percentProperty(),
		"interestRate":           map[string]interface{}{"type": "number", "minimum": 0, "maximum": maxInterestRate},
		"inflationRate":          map[string]interface{}{"type": "number"},
		"currency":               map[string]interface{}{"type": "string", "pattern": "^[A-Z]{3}$"},
	},
	"required":             []string{"annualRevenue", "churnRate", "earnOutPercent"},
	"additionalProperties": false,
})

func mustCompileSchema(schema map[string]interface{}) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile deal form schema: %v", err))
	}
	return compiled
}

func percentProperty() map[string]interface{} {
	return map[string]interface{}{"type": "number", "minimum": 0, "maximum": 100}
}

// DealForm is the request shape of a deal. Optional fields fall back to the
// form defaults.
type DealForm struct {
	AnnualRevenue          float64  `json:"annualRevenue"`
	ChurnRate              float64  `json:"churnRate"`
	GrowthRate             *float64 `json:"growthRate,omitempty"`
	EarnOutPercent         float64  `json:"earnOutPercent"`
	EarnOutYears           *float64 `json:"earnOutYears,omitempty"`
	SellerFinancingPercent *float64 `json:"sellerFinancingPercent,omitempty"`
	AllCashPercent         *float64 `json:"allCashPercent,omitempty"`
	TaxRate                *float64 `json:"taxRate,omitempty"`
	InterestRate           *float64 `json:"interestRate,omitempty"`
	InflationRate          *float64 `json:"inflationRate,omitempty"`
	Currency               string   `json:"currency,omitempty"`
}

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormError lists every problem found in a submitted deal form.
type FormError struct {
	Violations []Violation
}

func (e *FormError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "invalid deal form: " + strings.Join(parts, "; ")
}

// DecodeDealForm validates a JSON deal form and converts it into parameters
// that satisfy the projection's invariants, including the split constraint.
func DecodeDealForm(body []byte) (domain.DealParameters, error) {
	result, err := dealFormSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.DealParameters{}, &FormError{Violations: []Violation{{Field: "(root)", Message: err.Error()}}}
	}
	if !result.Valid() {
		violations := make([]Violation, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, Violation{Field: violationField(desc), Message: desc.Description()})
		}
		return domain.DealParameters{}, &FormError{Violations: violations}
	}

	var form DealForm
	if err := json.Unmarshal(body, &form); err != nil {
		return domain.DealParameters{}, fmt.Errorf("decode deal form: %w", err)
	}

	params := form.toParameters()
	split := params.EarnOutPercent + params.SellerFinancingPercent + params.AllCashPercent
	if split > 100+splitTolerance {
		return domain.DealParameters{}, &FormError{Violations: []Violation{{
			Field:   "earnOutPercent",
			Message: fmt.Sprintf("earn-out, seller-financing and all-cash percentages add up to %g, must not exceed 100", split),
		}}}
	}
	return params, nil
}

func (f DealForm) toParameters() domain.DealParameters {
	return domain.DealParameters{
		AnnualRevenue:          f.AnnualRevenue,
		ChurnRate:              f.ChurnRate,
		GrowthRate:             valueOr(f.GrowthRate, defaultGrowthRate),
		EarnOutPercent:         f.EarnOutPercent,
		EarnOutYears:           int(valueOr(f.EarnOutYears, defaultEarnOutYears)),
		SellerFinancingPercent: valueOr(f.SellerFinancingPercent, defaultSellerFinancing),
		AllCashPercent:         valueOr(f.AllCashPercent, defaultAllCash),
		TaxRate:                valueOr(f.TaxRate, defaultTaxRate),
		InterestRate:           valueOr(f.InterestRate, defaultInterestRate),
		InflationRate:          valueOr(f.InflationRate, 0),
		Currency:               f.Currency,
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func violationField(desc gojsonschema.ResultError) string {
	if desc.Field() == "(root)" {
		if prop, ok := desc.Details()["property"].(string); ok {
			return prop
		}
	}
	return desc.Field()
}
