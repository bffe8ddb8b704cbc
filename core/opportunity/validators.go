package opportunity

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

var (
	stageTag  = "oppstage"
	stageText = "unknown opportunity stage"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(stageTag, core.OneOfValidation(Stages))
	core.RegisterCustomTranslation(validate, translator, stageTag, stageText)
}
