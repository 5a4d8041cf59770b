package service

import (
	"testing"

	"github.com/shelfglow/inventory-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRow(t *testing.T) {
	t.Run("Success - Full CSV Row", func(t *testing.T) {
		// Arrange
		row := models.ImportRow{
			"code":     "A1",
			"name":     "Widget",
			"price":    "12.50 EUR",
			"volume":   "500 mL",
			"stockQty": "5",
			"tags":     "summer, sale",
			"brand":    " Acme ",
		}

		// Act
		op, rowErr := normalizeRow(1, row)

		// Assert
		require.Nil(t, rowErr)
		assert.Equal(t, "A1", op.Code)
		assert.Equal(t, models.Money{Amount: 12.5, Currency: "EUR"}, op.Set["price"])
		assert.Equal(t, models.Volume{Value: 500, Unit: "mL"}, op.Set["volume"])
		assert.Equal(t, 5, op.Set["stockQty"])
		assert.Equal(t, []string{"summer", "sale"}, op.Set["tags"])
		assert.Equal(t, "Acme", op.Set["brand"])
		assert.Equal(t, true, op.Set["isActive"])
	})

	t.Run("Failure - Missing Code And Name", func(t *testing.T) {
		// Act
		_, rowErr := normalizeRow(3, models.ImportRow{"brand": "Acme"})

		// Assert
		require.NotNil(t, rowErr)
		assert.Equal(t, 3, rowErr.Row)
		assert.Contains(t, rowErr.Fields, "code")
		assert.Contains(t, rowErr.Fields, "name")
	})

	t.Run("Failure - Blank Code", func(t *testing.T) {
		// Act
		_, rowErr := normalizeRow(1, models.ImportRow{"code": "  ", "name": "Widget"})

		// Assert
		require.NotNil(t, rowErr)
		assert.Contains(t, rowErr.Fields, "code")
	})

	t.Run("Unparsable Price Is Dropped, Row Survives", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "price": "cheap"})

		// Assert
		require.Nil(t, rowErr)
		_, ok := op.Set["price"]
		assert.False(t, ok)
	})

	t.Run("Negative Price Is Dropped, Row Survives", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "price": "-5"})

		// Assert
		require.Nil(t, rowErr)
		_, ok := op.Set["price"]
		assert.False(t, ok)
	})

	t.Run("Negative Stock Is Dropped, Row Survives", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "stockQty": "-3"})

		// Assert
		require.Nil(t, rowErr)
		_, ok := op.Set["stockQty"]
		assert.False(t, ok)
	})

	t.Run("Unparsable Volume Is Dropped, Row Survives", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "volume": "lots"})

		// Assert
		require.Nil(t, rowErr)
		_, ok := op.Set["volume"]
		assert.False(t, ok)
	})

	t.Run("Failure - Non String Tag Fails The Row", func(t *testing.T) {
		// Act
		_, rowErr := normalizeRow(2, models.ImportRow{"code": "A1", "name": "Widget", "tags": []any{"a", 1}})

		// Assert
		require.NotNil(t, rowErr)
		assert.Contains(t, rowErr.Fields, "tags")
	})

	t.Run("Failure - Non Map Attributes Fail The Row", func(t *testing.T) {
		// Act
		_, rowErr := normalizeRow(2, models.ImportRow{"code": "A1", "name": "Widget", "attributes": "color=red"})

		// Assert
		require.NotNil(t, rowErr)
		assert.Contains(t, rowErr.Fields, "attributes")
	})

	t.Run("Failure - Non Boolean IsActive Fails The Row", func(t *testing.T) {
		// Act
		_, rowErr := normalizeRow(2, models.ImportRow{"code": "A1", "name": "Widget", "isActive": 123})

		// Assert
		require.NotNil(t, rowErr)
		assert.Contains(t, rowErr.Fields, "isActive")
	})

	t.Run("IsActive String Is Coerced", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "isActive": "false"})

		// Assert
		require.Nil(t, rowErr)
		assert.Equal(t, false, op.Set["isActive"])
	})

	t.Run("AIDescription String Becomes Content", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "aiDescription": "generated copy"})

		// Assert
		require.Nil(t, rowErr)
		assert.Equal(t, models.AIDescription{Content: "generated copy"}, op.Set["aiDescription"])
	})

	t.Run("JSON Numeric Price Is Accepted", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "price": 9.99})

		// Assert
		require.Nil(t, rowErr)
		assert.Equal(t, models.Money{Amount: 9.99}, op.Set["price"])
	})

	t.Run("Empty String Fields Are Absent", func(t *testing.T) {
		// Act
		op, rowErr := normalizeRow(1, models.ImportRow{"code": "A1", "name": "Widget", "brand": "  "})

		// Assert
		require.Nil(t, rowErr)
		_, ok := op.Set["brand"]
		assert.False(t, ok)
	})
}

func TestPlanUpserts(t *testing.T) {
	t.Run("Last Wins, First Seen Position Kept", func(t *testing.T) {
		// Arrange
		ops := []models.UpsertOp{
			{Code: "A1", Set: map[string]any{"name": "v1"}},
			{Code: "B2", Set: map[string]any{"name": "b"}},
			{Code: "A1", Set: map[string]any{"name": "v2"}},
		}

		// Act
		plan := planUpserts(ops)

		// Assert
		require.Len(t, plan, 2)
		assert.Equal(t, "A1", plan[0].Code)
		assert.Equal(t, "v2", plan[0].Set["name"])
		assert.Equal(t, "B2", plan[1].Code)
	})

	t.Run("Duplicate Replaces Whole Op, No Field Merge", func(t *testing.T) {
		// Arrange
		ops := []models.UpsertOp{
			{Code: "A1", Set: map[string]any{"name": "v1", "brand": "Acme"}},
			{Code: "A1", Set: map[string]any{"name": "v2"}},
		}

		// Act
		plan := planUpserts(ops)

		// Assert
		require.Len(t, plan, 1)
		assert.Equal(t, "v2", plan[0].Set["name"])
		_, ok := plan[0].Set["brand"]
		assert.False(t, ok, "earlier op's fields must not leak into the replacement")
	})

	t.Run("Empty Plan", func(t *testing.T) {
		assert.Empty(t, planUpserts(nil))
	})
}
