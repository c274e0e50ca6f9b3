package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "solicitud inválida", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "autenticación requerida"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "acceso denegado"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "recurso no encontrado"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflicto detectado"},
		{code: CodeStateConflict, status: http.StatusConflict, publicMsg: "el recurso fue modificado concurrentemente", retryable: true, detailsOK: true},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "clave de idempotencia reutilizada", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "error interno del servidor", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependencia no disponible", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestNewfAndIsCode(t *testing.T) {
	err := Newf(CodeNotFound, "No se encontró el soporte con código %s", "GFG999")
	if err.Message() != "No se encontró el soporte con código GFG999" {
		t.Fatalf("unexpected message %q", err.Message())
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatal("expected IsCode to see through wrapping")
	}
	if IsCode(wrapped, CodeConflict) {
		t.Fatal("unexpected match for conflict")
	}
	if IsCode(stdErrors.New("plain"), CodeNotFound) {
		t.Fatal("plain errors carry no code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(CodeDependency, stdErrors.New("dial tcp"), "redis down"))
	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected three links, got %v", d.Chain)
	}
	if d.PGCode != "" {
		t.Fatalf("unexpected pg code %q", d.PGCode)
	}
}

func TestDumpExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_inventory_code", TableName: "inventory", Message: "duplicate key"}
	d := Dump(Wrap(CodeConflict, pgErr, "insert inventory"))
	if d.PGCode != "23505" || d.PGConstraint != "idx_inventory_code" || d.PGTable != "inventory" {
		t.Fatalf("unexpected pgx dump %+v", d)
	}

	pqErr := &pq.Error{Code: "23503", Constraint: "fk_proposal_items_proposal", Table: "proposal_items"}
	d = Dump(fmt.Errorf("wrap: %w", pqErr))
	if d.PGCode != "23503" || d.PGConstraint != "fk_proposal_items_proposal" {
		t.Fatalf("unexpected pq dump %+v", d)
	}
}

func TestDumpSQLiteAndLogFields(t *testing.T) {
	liteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	d := Dump(Wrap(CodeConflict, liteErr, "insert partner"))
	if d.Driver != "sqlite" || d.SQLiteCode != int(sqlite3.ErrConstraint) {
		t.Fatalf("unexpected sqlite dump %+v", d)
	}
	fields := d.LogFields()
	if fields["sqlite_extended"] != int(sqlite3.ErrConstraintUnique) {
		t.Fatalf("missing sqlite fields %v", fields)
	}
	if _, ok := fields["pg_code"]; ok {
		t.Fatal("empty pg fields should be omitted")
	}

	plain := Dump(stdErrors.New("boom")).LogFields()
	if _, ok := plain["db_driver"]; ok {
		t.Fatal("plain errors carry no driver")
	}
}

func TestExposeMessageOnlyForClientCodes(t *testing.T) {
	if !MetadataFor(CodeNotFound).ExposeMessage || !MetadataFor(CodeValidation).ExposeMessage {
		t.Fatal("client-facing codes should expose caller messages")
	}
	if MetadataFor(CodeInternal).ExposeMessage || MetadataFor(CodeDependency).ExposeMessage {
		t.Fatal("server codes must keep the public message")
	}
}

func TestStatus(t *testing.T) {
	if got := Status(fmt.Errorf("wrap: %w", New(CodeStateConflict, "cas"))); got != http.StatusConflict {
		t.Fatalf("expected 409, got %d", got)
	}
	if got := Status(stdErrors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got)
	}
}

func TestJoinDropsNilsAndKeepsCauses(t *testing.T) {
	if Join(CodeInternal, "seed", nil, nil) != nil {
		t.Fatal("expected nil when every input is nil")
	}
	inventoryErr := stdErrors.New("inventory failed")
	partnersErr := stdErrors.New("partners failed")
	err := Join(CodeInternal, "seed", inventoryErr, nil, partnersErr)
	if !stdErrors.Is(err, inventoryErr) || !stdErrors.Is(err, partnersErr) {
		t.Fatalf("expected both causes in chain: %v", err)
	}
	details, _ := As(err).Details().(map[string]any)
	if details["errors"] != 2 {
		t.Fatalf("expected two joined errors, got %v", details)
	}
}

func TestFieldErrors(t *testing.T) {
	fields := FieldErrors{}
	if fields.Err("validación fallida") != nil {
		t.Fatal("empty field set should not produce an error")
	}
	fields.Add("clientName", "es obligatorio")
	fields.Add("clientName", "otro mensaje")
	err := fields.Err("validación fallida")
	if !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation code, got %v", err)
	}
	details := As(err).Details().(map[string]string)
	if details["clientName"] != "es obligatorio" {
		t.Fatalf("first message should win, got %v", details)
	}
}
