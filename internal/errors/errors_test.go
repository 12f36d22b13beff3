package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

var errSentinel = stderrors.New("sentinel")

func TestWrapKeepsCode(t *testing.T) {
	base := NotFound("sample")
	wrapped := Wrap(base, "loading sample")

	if GetCode(wrapped) != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, GetCode(wrapped))
	}
	if HTTPStatus(wrapped) != http.StatusNotFound {
		t.Errorf("expected 404, got %d", HTTPStatus(wrapped))
	}
	if Wrap(nil, "nothing") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrapf(errSentinel, "step %d", 2)
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("expected internal error code, got %s", GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, errSentinel) {
		t.Error("cause must stay reachable")
	}
	if wrapped.Error() != "step 2: sentinel" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestValidationErrorWithCause(t *testing.T) {
	err := ValidationErrorWithCause("fill every cell", errSentinel)

	if !stderrors.Is(err, errSentinel) {
		t.Error("expected sentinel to be reachable")
	}
	if UserMessage(err) != "fill every cell" {
		t.Errorf("unexpected user message %q", UserMessage(err))
	}
	if HTTPStatus(err) != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", HTTPStatus(err))
	}
}

func TestHTTPStatusDefaults(t *testing.T) {
	if HTTPStatus(errSentinel) != http.StatusInternalServerError {
		t.Error("unknown errors map to 500")
	}
	if HTTPStatus(InvalidInput("bad")) != http.StatusBadRequest {
		t.Error("invalid input maps to 400")
	}
	if HTTPStatus(TooLarge("big")) != http.StatusRequestEntityTooLarge {
		t.Error("too large maps to 413")
	}
	if GetCode(errSentinel) != "UNKNOWN" {
		t.Error("plain errors have no code")
	}
}
