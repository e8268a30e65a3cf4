package errors

import (
	stderrs "errors"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouse server exception codes worth classifying
var chCodes = map[int32]ErrorCode{
	16:  ErrorCodeInvalidArgument, // NO_SUCH_COLUMN_IN_TABLE
	27:  ErrorCodeInvalidArgument, // CANNOT_PARSE_INPUT_ASSERTION_FAILED
	53:  ErrorCodeInvalidArgument, // TYPE_MISMATCH
	60:  ErrorCodeDB,              // UNKNOWN_TABLE
	81:  ErrorCodeDB,              // UNKNOWN_DATABASE
	159: ErrorCodeUnavailable,     // TIMEOUT_EXCEEDED
	202: ErrorCodeTooManyRequests, // TOO_MANY_SIMULTANEOUS_QUERIES
	209: ErrorCodeUnavailable,     // SOCKET_TIMEOUT
	210: ErrorCodeUnavailable,     // NETWORK_ERROR
	241: ErrorCodeUnavailable,     // MEMORY_LIMIT_EXCEEDED
	252: ErrorCodeTooManyRequests, // TOO_MANY_PARTS
}

var chRetryable = map[int32]bool{159: true, 202: true, 209: true, 210: true, 252: true}

// CHException returns the ClickHouse server exception in err's chain
func CHException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// FromClickHouse wraps err with the code its server exception maps to
func FromClickHouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if ex, ok := CHException(err); ok {
		if c, ok := chCodes[ex.Code]; ok {
			code = c
		}
	}
	return Wrap(err, code, msg)
}
