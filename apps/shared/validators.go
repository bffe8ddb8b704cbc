package shared

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/account"
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/proposal"
	"github.com/trezcool/funil/core/task"
)

// NewValidator returns a validator knowing every entity tag, with its english translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	for _, initFn := range []func(*validator.Validate, ut.Translator){
		account.InitValidators,
		lead.InitValidators,
		opportunity.InitValidators,
		proposal.InitValidators,
		task.InitValidators,
	} {
		initFn(validate, translator)
	}
	return validate, translator
}
