package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDepositAmount(t *testing.T) {
	assert.NoError(t, ValidateDepositAmount(1))
	assert.NoError(t, ValidateDepositAmount(500))
	assert.NoError(t, ValidateDepositAmount(10000))

	assert.Error(t, ValidateDepositAmount(0))
	assert.Error(t, ValidateDepositAmount(0.99))
	assert.Error(t, ValidateDepositAmount(-10))
	assert.Error(t, ValidateDepositAmount(10000.01))
}

func TestValidateDisputeReason(t *testing.T) {
	assert.NoError(t, ValidateDisputeReason("результат не соответствует ТЗ"))

	assert.Error(t, ValidateDisputeReason(""))
	assert.Error(t, ValidateDisputeReason("   "))
	assert.Error(t, ValidateDisputeReason(strings.Repeat("а", MaxDisputeReasonLength+1)))
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, ValidateBudget(100))
	assert.Error(t, ValidateBudget(0))
	assert.Error(t, ValidateBudget(-1))
	assert.Error(t, ValidateBudget(MaxBudget+1))
}

func TestValidateProjectTitle(t *testing.T) {
	assert.NoError(t, ValidateProjectTitle("Разработка API"))
	assert.Error(t, ValidateProjectTitle(""))
	assert.Error(t, ValidateProjectTitle("ab"))
	assert.Error(t, ValidateProjectTitle(strings.Repeat("x", MaxProjectTitleLength+1)))
}

func TestValidateBidProposal(t *testing.T) {
	assert.NoError(t, ValidateBidProposal("Готов выполнить в срок"))
	assert.Error(t, ValidateBidProposal(""))
	assert.Error(t, ValidateBidProposal("коротко"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ivan@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("ivan@localhost"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password123"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
}
