package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	fk := fmt.Errorf("insert floor: %w", &pq.Error{Code: "23503"})
	overlap := fmt.Errorf("insert booking: %w", &pq.Error{Code: "23P01"})

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsExclusionViolation(fk))
	assert.True(t, IsExclusionViolation(overlap))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
	assert.Equal(t, pq.ErrorCode(""), Code(errors.New("plain")))
}
