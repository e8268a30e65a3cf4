package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code, col, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ColumnName: col, ConstraintName: constraint}
}

func TestDBErrorCode(t *testing.T) {
	tests := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22021", ErrorCodeInvalidArgument},
		{"40001", ErrorCodeDB},
		{"25006", ErrorCodeUnavailable},
		{"XX000", ErrorCodeDB},
	}
	for _, tc := range tests {
		got, ok := DBErrorCode(fmt.Errorf("exec: %w", pg(tc.code, "", "")))
		if !ok || got != tc.want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", tc.code, got, ok, tc.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatal("non-pg error classified")
	}
}

func TestFromPostgres_Field(t *testing.T) {
	tests := []struct {
		name      string
		err       *pgconn.PgError
		wantCode  ErrorCode
		wantField string
	}{
		{"column", pg("23502", "clean", ""), ErrorCodeValidation, "clean"},
		{"constraint token", pg("23514", "", "documents_locale"), ErrorCodeValidation, "locale"},
		{"pkey", pg("23505", "", "documents_pkey"), ErrorCodeDuplicateKey, ""},
		{"key", pg("23505", "", "documents_id_key"), ErrorCodeDuplicateKey, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := As(FromPostgres(tc.err, "insert document"))
			if !ok || e.Code() != tc.wantCode || e.Field() != tc.wantField {
				t.Fatalf("got %+v", e)
			}
		})
	}
	if FromPostgres(nil, "x") != nil {
		t.Fatal("nil passthrough")
	}
	if !IsCode(FromPostgres(stderrs.New("conn reset"), "x"), ErrorCodeDB) {
		t.Fatal("foreign error should be DB")
	}
	if !IsDuplicateKey(FromPostgres(pg("23505", "", ""), "x")) {
		t.Fatal("IsDuplicateKey through wrap")
	}
}

func TestFromClickHouse(t *testing.T) {
	tests := []struct {
		code int32
		want ErrorCode
	}{
		{60, ErrorCodeDB},
		{53, ErrorCodeInvalidArgument},
		{202, ErrorCodeTooManyRequests},
		{241, ErrorCodeUnavailable},
		{1, ErrorCodeDB},
	}
	for _, tc := range tests {
		err := FromClickHouse(&clickhouse.Exception{Code: tc.code, Message: "x"}, "insert sentences")
		if !IsCode(err, tc.want) {
			t.Fatalf("FromClickHouse(%d) = %v, want %v", tc.code, CodeOf(err), tc.want)
		}
	}
	if FromClickHouse(nil, "x") != nil {
		t.Fatal("nil passthrough")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", pg("40001", "", ""), true},
		{"deadlock", fmt.Errorf("tx: %w", pg("40P01", "", "")), true},
		{"unique", pg("23505", "", ""), false},
		{"ch parts", &clickhouse.Exception{Code: 252}, true},
		{"ch table", &clickhouse.Exception{Code: 60}, false},
		{"text", stderrs.New("ERROR: commit unexpectedly resulted in rollback"), true},
		{"canceled", fmt.Errorf("q: %w", context.Canceled), false},
		{"plain", stderrs.New("nope"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Retryable(tc.err); got != tc.want {
				t.Fatalf("Retryable = %v, want %v", got, tc.want)
			}
		})
	}
}
