package gateway

import (
	"errors"
	"net/http"

	financeErrors "github.com/sebuszqo/BillPlatform/internal/finance/errors"
	"github.com/sebuszqo/BillPlatform/internal/region"
	"github.com/sebuszqo/BillPlatform/internal/user"
)

// Kind classifies why a request did not succeed.
type Kind int

const (
	KindEmptyInput Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindDuplicateEmail
	// KindNoData is a read that worked but matched nothing.
	KindNoData
	KindOperationFailed
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "EmptyInput"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindDuplicateEmail:
		return "DuplicateEmail"
	case KindNoData:
		return "NoData"
	case KindOperationFailed:
		return "OperationFailed"
	default:
		return "Internal"
	}
}

var defaultCodes = map[Kind]int{
	KindEmptyInput:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindNotFound:        http.StatusBadRequest,
	KindDuplicateEmail:  http.StatusBadRequest,
	KindNoData:          http.StatusBadRequest,
	KindOperationFailed: http.StatusBadRequest,
	KindInternal:        http.StatusInternalServerError,
}

const (
	msgSuccess           = "success"
	msgEmptyInput        = "required data is empty"
	msgEmptyParam        = "required parameter is empty"
	msgInvalidBody       = "invalid request body"
	msgInvalidBillDate   = "bill date is malformed"
	msgInvalidLimit      = "parameter is empty or malformed"
	msgInvalidAmount     = "amount may have at most two decimal places"
	msgUnauthorized      = "unauthorized"
	msgAlreadyRegistered = "email is already registered, please log in or recover your password"
	msgFailed            = "operation failed"
	msgEmailNotFound     = "email does not exist"
	msgUserNotFound      = "user does not exist"
	msgCategoryNotFound  = "bill type does not exist"
	msgProvinceNotFound  = "province does not exist, please re-enter"
	msgCityNotFound      = "city does not exist, please re-enter"
	msgInternal          = "internal server error"
)

// Failure is a rejected request together with the message shown to the caller.
type Failure struct {
	Kind Kind
	Msg  string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Kind.String() + ": " + f.Msg + ": " + f.Err.Error()
	}
	return f.Kind.String() + ": " + f.Msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(kind Kind, msg string) *Failure {
	return &Failure{Kind: kind, Msg: msg}
}

// classify maps component errors onto the gateway taxonomy. Unknown errors
// become OperationFailed for writes and Internal for reads.
func classify(op operation, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return &Failure{Kind: KindDuplicateEmail, Msg: msgAlreadyRegistered, Err: err}
	case errors.Is(err, user.ErrInvalidEmail):
		return &Failure{Kind: KindEmptyInput, Msg: err.Error(), Err: err}
	case errors.Is(err, user.ErrEmptyCredentials):
		return &Failure{Kind: KindEmptyInput, Msg: msgEmptyInput, Err: err}
	case errors.Is(err, user.ErrInvalidLimit):
		return &Failure{Kind: KindEmptyInput, Msg: msgInvalidLimit, Err: err}
	case errors.Is(err, region.ErrInvalidProvinceID):
		return &Failure{Kind: KindEmptyInput, Msg: msgEmptyParam, Err: err}
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, financeErrors.ErrUnknownUser):
		return &Failure{Kind: KindNotFound, Msg: msgUserNotFound, Err: err}
	case errors.Is(err, financeErrors.ErrUnknownCategory):
		return &Failure{Kind: KindNotFound, Msg: msgCategoryNotFound, Err: err}
	case errors.Is(err, financeErrors.ErrReferenceViolation):
		return &Failure{Kind: KindOperationFailed, Msg: msgFailed, Err: err}
	case financeErrors.IsNoData(err):
		return &Failure{Kind: KindNoData, Msg: err.Error(), Err: err}
	case financeErrors.IsValidationError(err):
		return &Failure{Kind: KindEmptyInput, Msg: err.Error(), Err: err}
	}

	if op.write {
		return &Failure{Kind: KindOperationFailed, Msg: msgFailed, Err: err}
	}
	return &Failure{Kind: KindInternal, Msg: msgInternal, Err: err}
}
