package apperr

import (
	"errors"

	"github.com/tuanvumaihuynh/crm-graphql/pkg/zerror"
)

const (
	ValidationErrorCode = "VALIDATION_FAILED"

	InvalidEmailFormatCode = "INVALID_EMAIL_FORMAT"
	InvalidPhoneFormatCode = "INVALID_PHONE_FORMAT"
	EmailAlreadyExistsCode = "EMAIL_ALREADY_EXISTS"
	PriceNotPositiveCode   = "PRICE_NOT_POSITIVE"
	StockNegativeCode      = "STOCK_NEGATIVE"
	CustomerNotFoundCode   = "CUSTOMER_NOT_FOUND"
	NoProductsSelectedCode = "NO_PRODUCTS_SELECTED"
	InvalidProductIDsCode  = "INVALID_PRODUCT_IDS"

	RouteNotFoundCode       = "ROUTE_NOT_FOUND"
	MethodNotAllowedCode    = "METHOD_NOT_ALLOWED"
	DatabaseUnavailableCode = "DATABASE_UNAVAILABLE"
)

// The messages are returned verbatim to API clients.
var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	InvalidEmailFormatErr = zerror.NewValidationFailed(InvalidEmailFormatCode, "Invalid email format.")
	InvalidPhoneFormatErr = zerror.NewValidationFailed(InvalidPhoneFormatCode, "Invalid phone format.")
	EmailAlreadyExistsErr = zerror.NewConflict(EmailAlreadyExistsCode, "Email already exists.")

	PriceNotPositiveErr = zerror.NewUnprocessableEntity(PriceNotPositiveCode, "Price must be positive.")
	StockNegativeErr    = zerror.NewUnprocessableEntity(StockNegativeCode, "Stock cannot be negative.")

	CustomerNotFoundErr   = zerror.NewNotFound(CustomerNotFoundCode, "Invalid customer ID.")
	NoProductsSelectedErr = zerror.NewBadRequest(NoProductsSelectedCode, "At least one product must be selected.")
	InvalidProductIDsErr  = zerror.NewUnprocessableEntity(InvalidProductIDsCode, "One or more product IDs are invalid.")

	RouteNotFoundErr       = zerror.NewNotFound(RouteNotFoundCode, "route not found")
	MethodNotAllowedErr    = zerror.NewMethodNotAllowed(MethodNotAllowedCode, "method not allowed")
	DatabaseUnavailableErr = zerror.NewServiceUnavailable(DatabaseUnavailableCode, "database is unavailable")
)

// Message returns the user-facing message of the business error in err's
// chain. ok is false when err carries no business error.
func Message(err error) (msg string, ok bool) {
	var zerr zerror.ZError
	if !errors.As(err, &zerr) {
		return "", false
	}
	return zerr.Msg(), true
}
