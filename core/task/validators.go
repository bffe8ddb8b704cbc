package task

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

var (
	relationTag  = "taskrelation"
	relationText = "unknown related object type"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(relationTag, core.OneOfValidation(RelatedTypes))
	core.RegisterCustomTranslation(validate, translator, relationTag, relationText)
}
