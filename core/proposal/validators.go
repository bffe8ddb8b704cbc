package proposal

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
)

var (
	statusTag  = "propstatus"
	statusText = "unknown proposal status"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, core.OneOfValidation(Statuses))
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}
