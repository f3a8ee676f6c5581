package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedErrorsCarryStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Unauthorized("bad credentials"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Internal("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		require.Equal(t, c.code, Status(c.err))
		require.Equal(t, c.err.Message, Message(c.err))
		require.Equal(t, c.err.Message, c.err.Error())
	}
}

func TestUntypedErrorsAreMasked(t *testing.T) {
	raw := errors.New("Error 1064: You have an error in your SQL syntax")
	require.Equal(t, http.StatusInternalServerError, Status(raw))
	require.Equal(t, "internal server error", Message(raw))
}

func TestWrappedTypedErrorIsRecognized(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", Conflict("taken"))
	require.Equal(t, http.StatusConflict, Status(wrapped))
	require.Equal(t, "taken", Message(wrapped))
}
