package errors

type ErrorCode int

const (
	ErrOK                       ErrorCode = 0
	ErrInvalidParam             ErrorCode = 1000
	ErrMissingParam             ErrorCode = 1001
	ErrUnsupportedConfiguration ErrorCode = 2000
	ErrEncodingFailure          ErrorCode = 3000
	ErrDecodingFailure          ErrorCode = 3001
	ErrIncomparableDistance     ErrorCode = 4000
	ErrDistanceMismatch         ErrorCode = 4001
	ErrInvalidCandidate         ErrorCode = 4002
	ErrEngine                   ErrorCode = 5000
	ErrInternal                 ErrorCode = 5001
)

var codeNames = map[ErrorCode]string{
	ErrOK:                       "OK",
	ErrInvalidParam:             "INVALID_PARAM",
	ErrMissingParam:             "MISSING_PARAM",
	ErrUnsupportedConfiguration: "UNSUPPORTED_CONFIGURATION",
	ErrEncodingFailure:          "ENCODING_FAILURE",
	ErrDecodingFailure:          "DECODING_FAILURE",
	ErrIncomparableDistance:     "INCOMPARABLE_DISTANCE",
	ErrDistanceMismatch:         "DISTANCE_MISMATCH",
	ErrInvalidCandidate:         "INVALID_CANDIDATE",
	ErrEngine:                   "ENGINE",
	ErrInternal:                 "INTERNAL",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValidation reports whether the code describes a result that disagrees
// with the recomputed ground truth.
func (c ErrorCode) IsValidation() bool {
	return c >= 4000 && c < 5000
}
