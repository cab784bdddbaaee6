package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("gone")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequestf("bad")))
	assert.Equal(t, KindIllegalState, KindOf(IllegalStatef("stuck")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorizedf("who")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading order: %w", NotFoundf("Order not found with id: %d", 9))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundf("gone")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(BadRequestf("bad")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(IllegalStatef("stuck")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorizedf("who")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestMessageFormatting(t *testing.T) {
	err := NotFoundf("Product not found with id: %d", 17)
	assert.Equal(t, "Product not found with id: 17", err.Error())
}
