package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/internal/core/domain"
)

func TestParseChecksumSpec(t *testing.T) {
	tests := []struct {
		name      string
		spec      any
		wantState domain.ChecksumState
		wantAlgo  string
		wantErr   bool
	}{
		{
			name:      "Nil leaves policy unset",
			spec:      nil,
			wantState: domain.ChecksumUnset,
		},
		{
			name:      "False disables checking",
			spec:      false,
			wantState: domain.ChecksumNone,
		},
		{
			name:      "Auto defers to first access",
			spec:      "auto",
			wantState: domain.ChecksumPending,
		},
		{
			name:      "Explicit digest",
			spec:      "sha256:deadbeef",
			wantState: domain.ChecksumResolved,
			wantAlgo:  "sha256",
		},
		{
			name:    "True is rejected",
			spec:    true,
			wantErr: true,
		},
		{
			name:    "Digest without algorithm prefix",
			spec:    "deadbeef",
			wantErr: true,
		},
		{
			name:    "Unsupported value type",
			spec:    42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := domain.ParseChecksumSpec(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidChecksumSpec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, c.State)
			if tt.wantAlgo != "" {
				assert.Equal(t, tt.wantAlgo, c.Algorithm())
			}
		})
	}
}
