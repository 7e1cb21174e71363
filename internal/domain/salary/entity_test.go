package salary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeduction(t *testing.T) {
	assert.True(t, Deduction(0, 0).IsZero())
	assert.True(t, Deduction(3, 2).Equal(decimal.NewFromInt(550)))
}

func TestBuild(t *testing.T) {
	t.Run("default base salary", func(t *testing.T) {
		s := Build(1, "Alice", "2024-03", nil, 2, 1)

		assert.True(t, s.BaseSalary.Equal(decimal.NewFromInt(5000)))
		assert.True(t, s.Deduction.Equal(decimal.NewFromInt(300)))
		assert.True(t, s.TotalSalary.Equal(decimal.NewFromInt(7700)))
		assert.Equal(t, StatusPending, s.Status)
	})

	t.Run("employee base salary", func(t *testing.T) {
		base := decimal.NewFromInt(12000)
		s := Build(1, "Alice", "2024-03", &base, 0, 0)

		assert.True(t, s.TotalSalary.Equal(decimal.NewFromInt(15000)))
	})
}
