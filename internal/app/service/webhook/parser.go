package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lovelyapp/backend/pkg/apperror"
	"github.com/lovelyapp/backend/pkg/types"
)

const (
	MsgInvalidPayload   = "Payload inválido"
	MsgMissingSaleField = "Campo obrigatório ausente"

	// dateApprovedLayout is how Perfect Pay formats date_approved, in local time.
	dateApprovedLayout = "2006-01-02 15:04:05"
	currencyEnumBRL    = 1
)

// Number accepts a JSON number or a quoted one; Perfect Pay sends both.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*n = Number(f)
	return nil
}

type Customer struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
}

type PlanRef struct {
	Code string `json:"code" validate:"required"`
}

// Payload is the Perfect Pay sale notification.
type Payload struct {
	Token          string   `json:"token"`
	Code           string   `json:"code"`
	SaleStatusEnum Number   `json:"sale_status_enum"`
	SaleAmount     Number   `json:"sale_amount"`
	CurrencyEnum   Number   `json:"currency_enum"`
	DateApproved   string   `json:"date_approved"`
	Customer       Customer `json:"customer"`
	Plan           PlanRef  `json:"plan"`
}

func (p *Payload) Status() types.SaleStatus {
	f := float64(p.SaleStatusEnum)
	if f != float64(int(f)) {
		return types.SaleStatusInvalid
	}
	return types.SaleStatus(int(f))
}

// ParsePayload decodes body. A decoding failure is a validation error.
func ParsePayload(body []byte) (*Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperror.Validation("body", MsgInvalidPayload)
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &apperror.AppError{
			Err:     errors.Join(apperror.ErrValidation, err),
			Message: MsgInvalidPayload,
			Field:   "body",
		}
	}
	return &p, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateApproved checks the fields an approved sale cannot be processed without.
func (p *Payload) ValidateApproved() error {
	checks := []struct {
		prefix string
		value  any
	}{
		{"customer", &p.Customer},
		{"plan", &p.Plan},
	}
	for _, c := range checks {
		if err := validate.Struct(c.value); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				field := c.prefix + "." + jsonName(verrs[0].Field())
				return apperror.Validation(field, fmt.Sprintf("%s: %s", MsgMissingSaleField, field))
			}
			return apperror.Validation(c.prefix, MsgInvalidPayload)
		}
	}
	return nil
}

func jsonName(field string) string {
	switch field {
	case "Email":
		return "email"
	case "FullName":
		return "full_name"
	case "Code":
		return "code"
	}
	return strings.ToLower(field)
}

// ApprovedAt resolves date_approved in loc, falling back to now when absent
// or unparsable.
func (p *Payload) ApprovedAt(loc *time.Location, now time.Time) time.Time {
	s := strings.TrimSpace(p.DateApproved)
	if s == "" {
		return now
	}
	if t, err := time.ParseInLocation(dateApprovedLayout, s, loc); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return now
}

// Currency maps currency_enum, using fallback for unknown values.
func (p *Payload) Currency(fallback string) string {
	if int(p.CurrencyEnum) == currencyEnumBRL {
		return "BRL"
	}
	return fallback
}

// rawJSON keeps the delivered body as the stored payload. Bodies that are not
// JSON are stored as a JSON string so the column stays valid.
func rawJSON(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
