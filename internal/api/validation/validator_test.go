package validation

import (
	"testing"

	"github.com/blaisecz/meal-cycle/internal/domain"
)

func TestValidate(t *testing.T) {
	online := true
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantMsg   string
	}{
		{name: "valid baseline", input: domain.StartCycleRequest{BaselineValue: 95}},
		{name: "missing baseline", input: domain.StartCycleRequest{}, wantField: "baseline_value", wantMsg: "is required"},
		{name: "baseline too high", input: domain.StartCycleRequest{BaselineValue: 900}, wantField: "baseline_value", wantMsg: "must be between 20 and 600 mg/dL"},
		{name: "valid reading", input: domain.SubmitReadingRequest{Offset: 60, Value: 140}},
		{name: "negative offset", input: domain.SubmitReadingRequest{Offset: -5, Value: 140}, wantField: "offset", wantMsg: "must be greater than 0"},
		{name: "connectivity set", input: domain.ConnectivityRequest{Online: &online}},
		{name: "connectivity missing", input: domain.ConnectivityRequest{}, wantField: "online", wantMsg: "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.input)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("Validate() = %+v, want nil", errs)
				}
				return
			}
			if len(errs) != 1 || errs[0].Field != tt.wantField || errs[0].Message != tt.wantMsg {
				t.Fatalf("Validate() = %+v, want %s %q", errs, tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("BaselineValue"); got != "baseline_value" {
		t.Fatalf("toSnakeCase() = %q", got)
	}
}
