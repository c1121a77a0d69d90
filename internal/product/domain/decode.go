package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DecodePayload normalizes a loosely-typed catalog row, as imported feeds
// mix strings, numbers and aliased keys for the same field. Downstream
// code only ever sees the clean string form.
func DecodePayload(raw map[string]any) CreateProductRequest {
	return CreateProductRequest{
		ItemCode:        pick(raw, "item_code", "itemCode", "code"),
		Brand:           pick(raw, "brand"),
		ItemName:        pick(raw, "item_name", "itemName", "name"),
		Description:     pick(raw, "description"),
		HSNCode:         pick(raw, "hsn_code", "hsnCode", "hsn"),
		UnitPrice:       pick(raw, "unit_price", "unitPrice", "price", "rate"),
		Unit:            pick(raw, "unit"),
		DiscountPercent: pick(raw, "discount_percent", "discountPercent", "discount"),
		Image:           pick(raw, "image", "image_url", "imageUrl"),
	}
}

func pick(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			if s := stringify(value); s != "" {
				return s
			}
		}
	}
	return ""
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
