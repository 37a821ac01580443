package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidPair пара в JSON не прошла проверку полей
	ErrInvalidPair = errors.New("invalid pair")
	// ErrMalformedJSON документ не разбирается как JSON нужной формы
	ErrMalformedJSON = errors.New("malformed json")
)

func validationError(errs validator.ValidationErrors) error {
	parts := make([]string, len(errs))
	for i, fe := range errs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPair, strings.Join(parts, "; "))
}
