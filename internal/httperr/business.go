package httperr

import "errors"

// Kind classifica a regra de negócio violada.
type Kind string

const (
	KindBusiness   Kind = "business"
	KindValidation Kind = "validation"
	KindPolicy     Kind = "policy"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

// ErrValidation: entrada malformada ou ausente, início >= fim, início no passado.
func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

// ErrPolicy: fora do expediente ou em dia não útil.
func ErrPolicy(code string) error {
	return BusinessError{Kind: KindPolicy, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

// ErrConflict: compromisso sobreposto ou nenhum técnico atende a janela.
func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// AsBusiness extrai o BusinessError da cadeia, se houver.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
