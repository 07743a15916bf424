package request

import (
	"testing"

	"tour-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequestDefaults(t *testing.T) {
	var p PaginatedRequest

	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 0, p.Offset())

	// zero values are valid; services accept requests without pagination
	assert.Nil(t, utils.ValidateStruct(p))
}

func TestPaginatedRequestBounds(t *testing.T) {
	p := PaginatedRequest{Page: 3, PerPage: 20}
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 40, p.Offset())

	assert.Equal(t, 100, PaginatedRequest{PerPage: 500}.Limit())

	errs := utils.ValidateStruct(PaginatedRequest{Page: -1, PerPage: 200})
	assert.Contains(t, errs, "Page")
	assert.Contains(t, errs, "PerPage")
}
