package entity_test

import (
	"errors"
	"testing"

	"github.com/mortem-dev/mortem/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() entity.PostMortemRequest {
	return entity.PostMortemRequest{
		IncidentName: "API Outage",
		IncidentDate: "2024-01-05",
		Duration:     "2 hours",
		Impact:       "Checkout unavailable",
		RootCause:    "Connection pool exhaustion",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*entity.PostMortemRequest)
		missingField string
	}{
		{
			name:   "valid",
			mutate: func(r *entity.PostMortemRequest) {},
		},
		{
			name:         "missing incident name",
			mutate:       func(r *entity.PostMortemRequest) { r.IncidentName = "" },
			missingField: "incident",
		},
		{
			name:         "missing date",
			mutate:       func(r *entity.PostMortemRequest) { r.IncidentDate = "" },
			missingField: "date",
		},
		{
			name:         "missing duration",
			mutate:       func(r *entity.PostMortemRequest) { r.Duration = "" },
			missingField: "duration",
		},
		{
			name:         "missing impact",
			mutate:       func(r *entity.PostMortemRequest) { r.Impact = "" },
			missingField: "impact",
		},
		{
			name:         "missing root cause",
			mutate:       func(r *entity.PostMortemRequest) { r.RootCause = "" },
			missingField: "rootCause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.missingField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var missing *entity.MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.missingField, missing.Field)
			assert.Equal(t, "missing required field: "+tt.missingField, err.Error())
		})
	}
}

func TestValidateOptionalFieldsMayBeEmpty(t *testing.T) {
	req := validRequest()
	req.Timeline = ""
	req.Resolution = ""
	req.ActionItems = nil
	assert.NoError(t, req.Validate())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		req  entity.PostMortemRequest
		want string
	}{
		{
			name: "spaces become underscores",
			req:  entity.PostMortemRequest{IncidentName: "API Outage", IncidentDate: "2024-01-05"},
			want: "postmortem_2024-01-05_api_outage.md",
		},
		{
			name: "mixed case is lowered",
			req:  entity.PostMortemRequest{IncidentName: "DNS Failure In EU", IncidentDate: "2023-11-30"},
			want: "postmortem_2023-11-30_dns_failure_in_eu.md",
		},
		{
			name: "non-space punctuation passes through",
			req:  entity.PostMortemRequest{IncidentName: "Cache/DB Split-Brain", IncidentDate: "2024-02-29"},
			want: "postmortem_2024-02-29_cache/db_split-brain.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Filename())
		})
	}
}
