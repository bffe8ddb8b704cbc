package account

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

var (
	typeTag  = "accounttype"
	typeText = "unknown account type"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(typeTag, core.OneOfValidation(Types))
	core.RegisterCustomTranslation(validate, translator, typeTag, typeText)
}
