package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("CreateRound: %w", Validation("name", "is required"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "CreateRound: name: is required", err.Error())
}

func TestPersistenceKeepsGatewayError(t *testing.T) {
	gatewayErr := errors.New("database is locked")
	err := Persistence("insert round", gatewayErr)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, gatewayErr)
	assert.Nil(t, Persistence("noop", nil))
}

func TestPersistenceDoesNotRewrapDomainErrors(t *testing.T) {
	domainErr := NotFound("round", "r1")
	err := Persistence("get round", domainErr)

	assert.Same(t, domainErr, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindPersistence, KindOf(errors.New("boom")))
}
