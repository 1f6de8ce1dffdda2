package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/freelance-escrow/internal/models"
)

// Константы валидации
const (
	MinProjectTitleLength       = 3
	MaxProjectTitleLength       = 200
	MinProjectDescriptionLength = 10
	MaxProjectDescriptionLength = 5000
	MinBidProposalLength        = 10
	MaxBidProposalLength        = 2000
	MaxCategoryLength           = 100
	MaxDisputeReasonLength      = 2000
	MaxBudget                   = 100000000.0 // 100 миллионов
	MaxDurationDays             = 365
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateProjectTitle проверяет заголовок проекта.
func ValidateProjectTitle(title string) error {
	if title == "" {
		return fmt.Errorf("заголовок проекта обязателен")
	}

	title = strings.TrimSpace(title)

	return ValidateLength("заголовок проекта", title, MinProjectTitleLength, MaxProjectTitleLength)
}

// ValidateProjectDescription проверяет описание проекта.
func ValidateProjectDescription(description string) error {
	if description == "" {
		return fmt.Errorf("описание проекта обязательно")
	}

	description = strings.TrimSpace(description)

	return ValidateLength("описание проекта", description, MinProjectDescriptionLength, MaxProjectDescriptionLength)
}

// ValidateBudget проверяет бюджет проекта.
func ValidateBudget(budget float64) error {
	if budget <= 0 {
		return fmt.Errorf("бюджет должен быть положительным")
	}
	if budget > MaxBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateDuration проверяет срок выполнения в днях.
func ValidateDuration(duration int) error {
	if duration <= 0 {
		return fmt.Errorf("срок выполнения должен быть положительным")
	}
	if duration > MaxDurationDays {
		return fmt.Errorf("срок выполнения не может превышать %d дней", MaxDurationDays)
	}
	return nil
}

// ValidateBidAmount проверяет сумму отклика.
func ValidateBidAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("сумма должна быть положительной")
	}
	if amount > MaxBudget {
		return fmt.Errorf("сумма не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateBidProposal проверяет сопроводительное письмо отклика.
func ValidateBidProposal(proposal string) error {
	if proposal == "" {
		return fmt.Errorf("сопроводительное письмо обязательно")
	}

	proposal = strings.TrimSpace(proposal)

	return ValidateLength("сопроводительное письмо", proposal, MinBidProposalLength, MaxBidProposalLength)
}

// ValidateDepositAmount проверяет сумму одного пополнения кошелька.
// Допустимый диапазон для одного запроса: [1, 10000].
func ValidateDepositAmount(amount float64) error {
	if amount < models.MinDepositAmount || amount > models.MaxDepositAmount {
		return fmt.Errorf("сумма пополнения должна быть от %.0f до %.0f", models.MinDepositAmount, models.MaxDepositAmount)
	}
	return nil
}

// ValidatePaymentAmount проверяет сумму платежа.
func ValidatePaymentAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("сумма платежа должна быть положительной")
	}
	return nil
}

// ValidateDisputeReason проверяет причину отклонения работы.
func ValidateDisputeReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("причина отклонения не может быть пустой")
	}

	return ValidateLength("причина отклонения", reason, 0, MaxDisputeReasonLength)
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	if len(parts[0]) == 0 || len(parts[0]) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(parts[1]) == 0 || len(parts[1]) > 255 || !strings.Contains(parts[1], ".") {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}
