package quote

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Quote{}, &models.QuoteItem{}))
	return conn
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(newTestDB(t)))
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestCreateQuoteComputesExactTotals(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateQuote(context.Background(), "user-1", CreateQuoteInput{
		CustomerName: "Construtora Silva",
		Items: []QuoteItemInput{
			{ProductCode: "DJ-25", Description: "Disjuntor 25A", Quantity: 3, UnitPrice: decimal.NewFromFloat(45.90)},
			{ProductCode: "CB-10", Quantity: 10, UnitPrice: decimal.NewFromFloat(9.99)},
		},
	})
	require.NoError(t, err)

	// 3*45.90 + 10*9.99 = 137.70 + 99.90 = 237.60, no float drift.
	assert.True(t, created.Total.Equal(decimal.NewFromFloat(237.60)), "total %s", created.Total)
	assert.Equal(t, "ORC-1700000000000", created.Number)
	assert.Equal(t, "draft", created.Status)
	require.Len(t, created.Items, 2)
	assert.True(t, created.Items[0].LineTotal.Equal(decimal.NewFromFloat(137.70)), "line total %s", created.Items[0].LineTotal)
}

func TestCreateQuoteValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateQuoteInput
	}{
		{"blankCustomer", CreateQuoteInput{CustomerName: " ", Items: []QuoteItemInput{{ProductCode: "X", Quantity: 1}}}},
		{"noItems", CreateQuoteInput{CustomerName: "C"}},
		{"blankCode", CreateQuoteInput{CustomerName: "C", Items: []QuoteItemInput{{ProductCode: " ", Quantity: 1}}}},
		{"zeroQuantity", CreateQuoteInput{CustomerName: "C", Items: []QuoteItemInput{{ProductCode: "X", Quantity: 0}}}},
		{"negativePrice", CreateQuoteInput{CustomerName: "C", Items: []QuoteItemInput{{ProductCode: "X", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateQuote(ctx, "user-1", tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestQuotesScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateQuote(ctx, "user-1", CreateQuoteInput{
		CustomerName: "Construtora Silva",
		Items:        []QuoteItemInput{{ProductCode: "DJ-25", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	_, err = svc.GetQuote(ctx, "user-2", created.ID)
	require.Error(t, err, "expected not found for another tenant")

	mine, err := svc.ListQuotes(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListQuotes(ctx, "user-2", 0)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
