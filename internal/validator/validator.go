// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"teamspace/internal/ids"
)

var (
	teamSpaceIDRegex   = elementIDRegex(ids.TeamSpacePrefix)
	categoryIDRegex    = elementIDRegex(ids.CategoryPrefix)
	transactionIDRegex = elementIDRegex("[" + ids.TransactionPrefix + ids.LegacyTransactionPrefix + "]")
	joinCodeRegex      = regexp.MustCompile(`^[0-9a-f]{10}$`)
)

func elementIDRegex(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + prefix + `[0-9a-f]{8}$`)
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("teamspace_id", matches(teamSpaceIDRegex))
	_ = v.RegisterValidation("category_id", matches(categoryIDRegex))
	_ = v.RegisterValidation("transaction_id", matches(transactionIDRegex))
	_ = v.RegisterValidation("join_code", matches(joinCodeRegex))
	_ = v.RegisterValidation("user_id", validateUserID)
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// User IDs come from the identity provider and are opaque; only reject
// blanks and whitespace.
func validateUserID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && len(s) <= 128 && !strings.ContainsAny(s, " \t\r\n")
}
