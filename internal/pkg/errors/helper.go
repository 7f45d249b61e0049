package errors

func InvalidParam(paramName string) *VearchError {
	return Newf(ErrInvalidParam, "invalid parameter: %s", paramName)
}

func MissingParam(paramName string) *VearchError {
	return Newf(ErrMissingParam, "required parameter missing: %s", paramName)
}

func UnsupportedConfiguration(indexType, metric string) *VearchError {
	return Newf(ErrUnsupportedConfiguration, "no configuration for index type %s with metric %s", indexType, metric)
}

func EncodingFailure(what string, cause error) *VearchError {
	return Wrapf(ErrEncodingFailure, cause, "cannot encode %s", what)
}

func DecodingFailure(what string, cause error) *VearchError {
	return Wrapf(ErrDecodingFailure, cause, "cannot decode %s", what)
}

func EngineError(operation string, cause error) *VearchError {
	return Wrapf(ErrEngine, cause, "engine error in %s", operation)
}

func Internal(message string) *VearchError {
	return New(ErrInternal, message)
}
