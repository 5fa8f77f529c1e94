package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	msgCardNumber  = "Card number must be 16 digits"
	msgExpiration  = "Invalid expiration date. Please check month (MM) and year (YY)"
	msgCCV         = "CCV must be 3 digits"
	msgLicenseNum  = "Driver License Number must be a number"
	msgLicenseDate = "Driver License Expiration Date must be in the format MM/DD/YYYY"
	msgLicenseURL  = "Driver License Image must be a valid URL"
)

var usDate = regexp.MustCompile(`^[0-9]{2}/[0-9]{2}/[0-9]{4}$`)

// Errors maps a JSON field name to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "us_date", func(fl validator.FieldLevel) bool {
		return usDate.MatchString(fl.Field().String())
	})
	return &Validator{v: v, now: time.Now}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// NormalizeCardNumber strips all whitespace.
func NormalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// CreditCard checks the card form. The card number is normalized in place.
func (val *Validator) CreditCard(card *domain.CreditCard) error {
	card.CardNumber = NormalizeCardNumber(card.CardNumber)

	errs := Errors{}
	val.collect(card, errs, map[string]string{
		"cardNumber":      msgCardNumber,
		"expirationMonth": msgExpiration,
		"expirationYear":  msgExpiration,
		"ccv":             msgCCV,
	})
	if _, bad := errs["expirationMonth"]; !bad {
		if _, bad := errs["expirationYear"]; !bad && !val.validExpiry(card.ExpirationMonth, card.ExpirationYear) {
			errs["expirationMonth"] = msgExpiration
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (val *Validator) DriverLicense(license domain.DriverLicense) error {
	errs := Errors{}
	val.collect(license, errs, map[string]string{
		"number":         msgLicenseNum,
		"expirationDate": msgLicenseDate,
		"imageUrl":       msgLicenseURL,
	})
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validExpiry rejects months outside 1-12 and dates before the current month.
func (val *Validator) validExpiry(monthStr, yearStr string) bool {
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return false
	}

	now := val.now()
	currentYear := now.Year() % 100
	switch {
	case year < currentYear:
		return false
	case year == currentYear && month < int(now.Month()):
		return false
	}
	return true
}

func (val *Validator) collect(s any, errs Errors, messages map[string]string) {
	err := val.v.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["_"] = err.Error()
		return
	}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("failed on %s", fe.Tag())
		}
		errs[fe.Field()] = msg
	}
}
