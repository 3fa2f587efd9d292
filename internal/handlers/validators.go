package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/talentflow/internal/pipeline"
)

// RegisterValidators adds the "stage" tag to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return pipeline.Stage(fl.Field().String()).Valid()
	})
}
