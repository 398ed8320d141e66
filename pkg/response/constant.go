package response

const (
	DefaultErrorMessage = "Something went wrong"
	ValidationErrorMsg  = "Validation error"
)
