package validatorx

import (
	"regexp"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Phone numbers follow the regional mobile format: ten digits, leading zero.
var phoneRegex = regexp.MustCompile(`^0[0-9]{9}$`)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
	_ = v.RegisterValidation("vnphone", func(fl gpvalidator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// fieldMessages maps struct field + failed tag to the message the client
// expects. Unlisted combinations fall back to the generic invalid-request
// message.
var fieldMessages = map[string]map[string]string{
	"Name": {
		"required": "Name is required",
	},
	"Email": {
		"required":         "Email is required",
		"required_without": "Email or phone is required",
		"email":            "Email is invalid",
	},
	"Password": {
		"required": "Password is required",
		"min":      "Minimum password length is 6 characters",
		"max":      "Maximum password length is 20 characters",
	},
	"RepeatPassword": {
		"required": "Repeat password is required",
		"eqfield":  "Passwords do not match",
	},
	"Phone": {
		"required": "Phone is required",
		"vnphone":  "Phone is invalid",
	},
	"OldPassword": {
		"required": "Old password is required",
	},
	"NewPassword": {
		"required": "New password is required",
		"min":      "Minimum password length is 6 characters",
		"max":      "Maximum password length is 20 characters",
	},
	"RepeatNewPassword": {
		"required": "Repeat new password is required",
		"eqfield":  "New password and repeat new password do not match",
	},
	"Bio": {
		"max": "Maximum text length is 300 characters",
	},
}

// Message translates a validation error into the message for the first
// offending field. Fields are checked in struct declaration order, so the
// first error is the one the fail-fast contract expects.
func Message(err error) string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if byTag, ok := fieldMessages[fe.StructField()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return "invalid request"
}
