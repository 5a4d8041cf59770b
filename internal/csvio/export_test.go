package csvio_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shelfglow/inventory-backend/internal/csvio"
	"github.com/shelfglow/inventory-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderShopify(t *testing.T) {
	t.Run("Success - Full Record", func(t *testing.T) {
		// Arrange
		products := []models.Product{
			{
				Code:        "SHP-001",
				Name:        "Foo",
				Description: "A foo",
				Brand:       "Acme",
				StockQty:    5,
				Price:       &models.Money{Amount: 12.5},
				Tags:        []string{"a", "b"},
			},
		}

		// Act
		content, err := csvio.RenderShopify(products)

		// Assert
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, []string{"Handle", "Title", "Body", "Vendor", "Variant SKU", "Variant Inventory Qty", "Variant Price", "Tags"}, records[0])
		assert.Equal(t, []string{"shp-001", "Foo", "A foo", "Acme", "SHP-001", "5", "12.5", "a, b"}, records[1])
	})

	t.Run("Success - Missing Optionals Render Empty", func(t *testing.T) {
		// Arrange
		products := []models.Product{{Code: "A1", Name: "Bare", StockQty: 0}}

		// Act
		content, err := csvio.RenderShopify(products)

		// Assert
		require.NoError(t, err)

		records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"a1", "Bare", "", "", "A1", "0", "", ""}, records[1])
	})

	t.Run("Success - No Products Yields Header Only", func(t *testing.T) {
		// Act
		content, err := csvio.RenderShopify(nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Handle,Title,Body,Vendor,Variant SKU,Variant Inventory Qty,Variant Price,Tags\n", content)
	})
}

func TestRenderExcel(t *testing.T) {
	t.Run("Success - Template Column Order", func(t *testing.T) {
		// Arrange
		products := []models.Product{
			{
				Barcode:  "4006381333931",
				Code:     "A1",
				Name:     "Widget",
				Price:    &models.Money{Amount: 19.99, Currency: "EUR"},
				Category: "Toys",
				ImageURL: "https://img.example/a1.png",
				Volume:   &models.Volume{Value: 500, Unit: "mL"},
			},
		}

		// Act
		content := csvio.RenderExcel(products)

		// Assert
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, ",Barcode,CODE,PRODUCT NAME,PRICE,PRODUCT CATEGORY,IMAGE URL,mL", lines[0])
		assert.Equal(t, ",4006381333931,A1,Widget,19.99 EUR,Toys,https://img.example/a1.png,500 mL", lines[1])
	})

	t.Run("Success - Only Comma Values Are Quoted", func(t *testing.T) {
		// Arrange
		products := []models.Product{
			{Code: "A1", Name: "Widget, Large", Category: "Toys"},
		}

		// Act
		content := csvio.RenderExcel(products)

		// Assert
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `,,A1,"Widget, Large",,Toys,,`, lines[1])
	})

	t.Run("Success - Quotes Doubled Inside Quoted Values", func(t *testing.T) {
		// Arrange
		products := []models.Product{
			{Code: "A1", Name: `He said "hi", twice`},
		}

		// Act
		content := csvio.RenderExcel(products)

		// Assert
		assert.Contains(t, content, `"He said ""hi"", twice"`)
	})

	t.Run("Success - Plain Quotes Stay Unquoted", func(t *testing.T) {
		// Arrange
		products := []models.Product{
			{Code: "A1", Name: `5" Widget`},
		}

		// Act
		content := csvio.RenderExcel(products)

		// Assert
		assert.Contains(t, content, `,5" Widget,`)
	})
}
