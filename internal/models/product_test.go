package models_test

import (
	"testing"

	"github.com/shelfglow/inventory-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	t.Run("Success - Bare Amount", func(t *testing.T) {
		money, err := models.ParseMoney("12.50")
		require.NoError(t, err)
		assert.Equal(t, models.Money{Amount: 12.5}, money)
	})

	t.Run("Success - Amount With Currency", func(t *testing.T) {
		money, err := models.ParseMoney(" 19.99 EUR ")
		require.NoError(t, err)
		assert.Equal(t, models.Money{Amount: 19.99, Currency: "EUR"}, money)
	})

	t.Run("Failure - Not A Number", func(t *testing.T) {
		_, err := models.ParseMoney("abc")
		assert.Error(t, err)
	})

	t.Run("Failure - Too Many Fields", func(t *testing.T) {
		_, err := models.ParseMoney("19.99 EUR extra")
		assert.Error(t, err)
	})

	t.Run("Failure - Empty", func(t *testing.T) {
		_, err := models.ParseMoney("  ")
		assert.Error(t, err)
	})
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "12.5", models.Money{Amount: 12.5}.String())
	assert.Equal(t, "19.99 EUR", models.Money{Amount: 19.99, Currency: "EUR"}.String())
}

func TestParseVolume(t *testing.T) {
	t.Run("Success - Value With Spaced Unit", func(t *testing.T) {
		volume, err := models.ParseVolume("500 mL")
		require.NoError(t, err)
		assert.Equal(t, models.Volume{Value: 500, Unit: "mL"}, volume)
	})

	t.Run("Success - Value With Attached Unit", func(t *testing.T) {
		volume, err := models.ParseVolume("500mL")
		require.NoError(t, err)
		assert.Equal(t, models.Volume{Value: 500, Unit: "mL"}, volume)
	})

	t.Run("Success - Bare Value", func(t *testing.T) {
		volume, err := models.ParseVolume("750")
		require.NoError(t, err)
		assert.Equal(t, models.Volume{Value: 750}, volume)
	})

	t.Run("Failure - No Leading Number", func(t *testing.T) {
		_, err := models.ParseVolume("mL")
		assert.Error(t, err)
	})
}

func TestVolumeString(t *testing.T) {
	assert.Equal(t, "500 mL", models.Volume{Value: 500, Unit: "mL"}.String())
	assert.Equal(t, "750", models.Volume{Value: 750}.String())
}
