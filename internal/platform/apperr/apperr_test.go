package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("missing"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{StorageWrite("users", errors.New("disk full")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestIs_MatchesKind(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NotFound("User not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("did not expect match with ErrValidation")
	}
}

func TestMessage_HidesStorageCause(t *testing.T) {
	err := StorageWrite("users", errors.New("/var/data: permission denied"))
	if got := Message(err); got != "failed to persist changes" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, ErrStorageWrite) {
		t.Error("expected storage write kind")
	}
	if got := Message(errors.New("raw")); got != "internal server error" {
		t.Errorf("unexpected message %q", got)
	}
	if got := Message(Validation("CPF inválido ou não encontrado")); got != "CPF inválido ou não encontrado" {
		t.Errorf("unexpected message %q", got)
	}
}
