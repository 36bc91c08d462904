// internal/api/schema_test.go
package api

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePipelineRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     PipelineRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  PipelineRequest{CompanyName: "Apple", PartnerCompany: "Microsoft", Domain: "AI"},
		},
		{
			name: "valid with punctuation",
			req:  PipelineRequest{CompanyName: "Johnson & Johnson", PartnerCompany: "O'Reilly Media Inc.", Domain: "Healthcare"},
		},
		{
			name:    "empty company name",
			req:     PipelineRequest{CompanyName: "", PartnerCompany: "Microsoft", Domain: "AI"},
			wantErr: true,
		},
		{
			name:    "empty partner",
			req:     PipelineRequest{CompanyName: "Apple", PartnerCompany: "", Domain: "AI"},
			wantErr: true,
		},
		{
			name:    "domain not in whitelist",
			req:     PipelineRequest{CompanyName: "Apple", PartnerCompany: "Microsoft", Domain: "Quantum"},
			wantErr: true,
		},
		{
			name:    "company name with invalid characters",
			req:     PipelineRequest{CompanyName: "Apple<script>", PartnerCompany: "Microsoft", Domain: "AI"},
			wantErr: true,
		},
		{
			name:    "company name over 100 characters",
			req:     PipelineRequest{CompanyName: strings.Repeat("a", 101), PartnerCompany: "Microsoft", Domain: "AI"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePipelineRequest(tt.req)
			if tt.wantErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if len(vErr.Problems) == 0 {
					t.Fatal("expected at least one problem description")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAvailableDomainsIsFixedSet(t *testing.T) {
	t.Parallel()

	if len(AvailableDomains) != 10 {
		t.Fatalf("expected 10 domains, got %d", len(AvailableDomains))
	}
	for _, d := range AvailableDomains {
		if err := ValidatePipelineRequest(PipelineRequest{
			CompanyName:    "Apple",
			PartnerCompany: "Microsoft",
			Domain:         d,
		}); err != nil {
			t.Errorf("domain %q should validate: %v", d, err)
		}
	}
}
