package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListReturnsQuery_Valid(t *testing.T) {
	query, err := queries.NewListReturnsQuery("INV-2024-00731")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "INV-2024-00731", query.InvoiceNo())
}

func TestNewListReturnsQuery_EmptyInvoiceNo(t *testing.T) {
	_, err := queries.NewListReturnsQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestListReturnsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListReturnsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListReturnsQueryIsNotConstructed)
}
