package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vicdotun/payvault/internal/core/domain"
)

func TestTransactionStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TransactionStatus
		want   bool
	}{
		{
			name:   "initiated is not terminal",
			status: domain.Initiated,
			want:   false,
		},
		{
			name:   "pending is not terminal",
			status: domain.Pending,
			want:   false,
		},
		{
			name:   "completed is terminal",
			status: domain.Completed,
			want:   true,
		},
		{
			name:   "failed is terminal",
			status: domain.Failed,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}
