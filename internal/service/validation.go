package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"learner-results/backend/internal/model"
)

// ErrValidation 实体字段未通过校验
var ErrValidation = errors.New("参数校验失败")

// ValidationError 携带未通过校验的字段列表，errors.Is(err, ErrValidation) 成立
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank 注册失败只可能是 tag 为空，属于编程错误
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateActivityDates, model.Activity{})
	return v
}

// validateActivityDates 结束日期不得早于开始日期
func validateActivityDates(sl validator.StructLevel) {
	a := sl.Current().Interface().(model.Activity)
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		sl.ReportError(a.EndDate, "end_date", "EndDate", "gtefield", "start_date")
	}
}

// validateEntity 在持久化之前校验实体，返回 *ValidationError
func validateEntity(e interface{}) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+": "+fe.Tag())
	}
	return &ValidationError{Fields: fields}
}
