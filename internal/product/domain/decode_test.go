package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePayloadAliasedKeys(t *testing.T) {
	req := DecodePayload(map[string]any{
		"itemCode": "wdg-1",
		"name":     "Widget",
		"price":    125.5,
		"discount": "5",
		"hsn":      8471,
	})

	assert.Equal(t, "wdg-1", req.ItemCode)
	assert.Equal(t, "Widget", req.ItemName)
	assert.Equal(t, "125.5", req.UnitPrice)
	assert.Equal(t, "5", req.DiscountPercent)
	assert.Equal(t, "8471", req.HSNCode)
}

func TestDecodePayloadPrefersCanonicalKey(t *testing.T) {
	req := DecodePayload(map[string]any{
		"item_code": "A-1",
		"itemCode":  "B-2",
	})
	assert.Equal(t, "A-1", req.ItemCode)
}

func TestDecodePayloadUnusableValues(t *testing.T) {
	req := DecodePayload(map[string]any{
		"item_code":  true,
		"item_name":  nil,
		"unit_price": json.Number("49.90"),
		"brand":      "   ",
	})

	assert.Empty(t, req.ItemCode)
	assert.Empty(t, req.ItemName)
	assert.Empty(t, req.Brand)
	assert.Equal(t, "49.90", req.UnitPrice)
}
