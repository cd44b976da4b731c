package model

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCompanyNotFound:  http.StatusNotFound,
		ErrNoData:           http.StatusNotFound,
		ErrCompanyAmbiguous: http.StatusBadRequest,
		ErrMetricNotFound:   http.StatusBadRequest,
		ErrRatioNotFound:    http.StatusBadRequest,
		ErrValidation:       http.StatusBadRequest,
		ErrRateLimited:      http.StatusTooManyRequests,
		ErrAPI:              http.StatusBadGateway,
		ErrorCode("mystery"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.HTTPStatus(), string(code))
	}
}

func TestErrorStringIncludesSuggestions(t *testing.T) {
	e := NewError(ErrCompanyAmbiguous, "%q matches multiple companies", "general")
	e.Suggestions = []string{"General Electric (GE)", "General Motors (GM)"}

	s := e.Error()
	assert.Contains(t, s, "company_ambiguous")
	assert.Contains(t, s, "did you mean")
	assert.Contains(t, s, "General Motors (GM)")
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))

	orig := NewError(ErrNoData, "nothing here")
	assert.Equal(t, orig, AsError(eris.Wrap(orig, "outer")))

	folded := AsError(fmt.Errorf("plain failure"))
	assert.Equal(t, ErrAPI, folded.Code)
	assert.Contains(t, folded.Message, "plain failure")
}

func TestComputeChecksum(t *testing.T) {
	a := ComputeChecksum("320193", "revenue", 2023, "FY", 383285000000, "0000320193-23-000106")
	b := ComputeChecksum("320193", "revenue", 2023, "FY", 383285000000, "0000320193-23-000106")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c := ComputeChecksum("320193", "revenue", 2023, "FY", 383285000001, "0000320193-23-000106")
	assert.NotEqual(t, a, c)
}
