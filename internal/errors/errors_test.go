package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeOfWrappedAppError(t *testing.T) {
	base := NotFound("order ORD1")
	wrapped := Wrap(base, "load order")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Equal(t, "load order: order ORD1 not found", wrapped.Error())
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("disk full"), "save %s", "data.xlsx")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "save data.xlsx: disk full", wrapped.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "noop"))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad filename"))

	assert.True(t, HasCode(err, CodeInvalidInput))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestExternalServiceError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := ExternalServiceError("backend", cause)

	assert.Equal(t, CodeExternalService, err.Code)
	assert.True(t, Is(err, cause))
	assert.Equal(t, "backend service error: connection refused", err.Error())
}
