package providers

import (
	"sdd/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	for _, section := range []interface{}{
		&cv.conf.WebServer,
		&cv.conf.Persistence,
		&cv.conf.Logger,
		&cv.conf.Analysis,
	} {
		v := validate.Struct(section)
		if !v.Validate() {
			return v.Errors.OneError()
		}
	}
	return nil
}
