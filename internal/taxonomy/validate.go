package taxonomy

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with one custom tag per closed
// taxonomy: statutory_topic, practice_area, remedy_type, industry_sector.
// Labels contain spaces and slashes, so a plain oneof tag cannot express them.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("statutory_topic", func(fl validator.FieldLevel) bool {
			return StatutoryTopic(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("practice_area", func(fl validator.FieldLevel) bool {
			return PracticeArea(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("remedy_type", func(fl validator.FieldLevel) bool {
			return RemedyType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("industry_sector", func(fl validator.FieldLevel) bool {
			return IndustrySector(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}
