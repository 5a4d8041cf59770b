package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shelfglow/inventory-backend/internal/models"
)

// normalizeRow validates one import row against the product schema and
// returns the cleaned field set, or a RowError when the row must be skipped.
// index is 1-based and counts data rows.
//
// The policy mirrors the import contract: code and name are required;
// structural fields (tags, attributes, isActive) are type-checked and fail
// the row; the coercible fields (price, volume, stockQty) are dropped
// silently when unparsable or negative so one dirty cell never loses a row.
func normalizeRow(index int, row models.ImportRow) (models.UpsertOp, *models.RowError) {
	fieldErrs := map[string]string{}
	set := map[string]any{}

	code := requireString(row, "code", fieldErrs)
	requireString(row, "name", fieldErrs)

	for _, field := range []string{"code", "name", "barcode", "shortDescription", "description", "brand", "category", "imageUrl"} {
		value, ok := row[field]
		if !ok {
			continue
		}

		s, ok := value.(string)
		if !ok {
			fieldErrs[field] = "must be a string"
			continue
		}

		if s = strings.TrimSpace(s); s != "" {
			set[field] = s
		}
	}

	if money, ok := coerceMoney(row["price"]); ok {
		set["price"] = money
	}

	if volume, ok := coerceVolume(row["volume"]); ok {
		set["volume"] = volume
	}

	if qty, ok := coerceQty(row["stockQty"]); ok {
		set["stockQty"] = qty
	}

	if value, ok := row["tags"]; ok {
		if tags, ok := coerceTags(value); ok {
			if len(tags) > 0 {
				set["tags"] = tags
			}
		} else {
			fieldErrs["tags"] = "must be an array of strings"
		}
	}

	if value, ok := row["attributes"]; ok {
		if attrs, ok := coerceAttributes(value); ok {
			if len(attrs) > 0 {
				set["attributes"] = attrs
			}
		} else {
			fieldErrs["attributes"] = "must be a flat string-to-string map"
		}
	}

	if value, ok := row["aiDescription"]; ok {
		if note, ok := coerceAIDescription(value); ok {
			set["aiDescription"] = note
		} else {
			fieldErrs["aiDescription"] = "must be a string or a {content, model, generatedAt} object"
		}
	}

	if value, ok := row["isActive"]; ok {
		if active, ok := coerceBool(value); ok {
			set["isActive"] = active
		} else {
			fieldErrs["isActive"] = "must be a boolean"
		}
	}

	if len(fieldErrs) > 0 {
		return models.UpsertOp{}, &models.RowError{Row: index, Fields: fieldErrs}
	}

	if _, ok := set["isActive"]; !ok {
		set["isActive"] = true
	}

	return models.UpsertOp{Code: code, Set: set}, nil
}

func requireString(row models.ImportRow, field string, fieldErrs map[string]string) string {
	value, ok := row[field]
	if !ok {
		fieldErrs[field] = "is required"
		return ""
	}

	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		fieldErrs[field] = "must be a non-empty string"
		return ""
	}

	return strings.TrimSpace(s)
}

func coerceMoney(value any) (models.Money, bool) {
	switch v := value.(type) {
	case string:
		money, err := models.ParseMoney(v)
		if err != nil || !validAmount(money.Amount) {
			return models.Money{}, false
		}

		return money, true
	case float64:
		if !validAmount(v) {
			return models.Money{}, false
		}

		return models.Money{Amount: v}, true
	case int:
		return coerceMoney(float64(v))
	case map[string]any:
		amount, ok := v["amount"].(float64)
		if !ok || !validAmount(amount) {
			return models.Money{}, false
		}

		money := models.Money{Amount: amount}
		if currency, ok := v["currency"].(string); ok {
			money.Currency = currency
		}

		return money, true
	default:
		return models.Money{}, false
	}
}

func coerceVolume(value any) (models.Volume, bool) {
	switch v := value.(type) {
	case string:
		volume, err := models.ParseVolume(v)
		if err != nil || !validAmount(volume.Value) {
			return models.Volume{}, false
		}

		return volume, true
	case float64:
		if !validAmount(v) {
			return models.Volume{}, false
		}

		return models.Volume{Value: v}, true
	case map[string]any:
		val, ok := v["value"].(float64)
		if !ok || !validAmount(val) {
			return models.Volume{}, false
		}

		volume := models.Volume{Value: val}
		if unit, ok := v["unit"].(string); ok {
			volume.Unit = unit
		}

		return volume, true
	default:
		return models.Volume{}, false
	}
}

func coerceQty(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}

		return coerceQty(f)
	case float64:
		if !validAmount(v) {
			return 0, false
		}

		return int(v), true
	case int:
		if v < 0 {
			return 0, false
		}

		return v, true
	default:
		return 0, false
	}
}

func coerceTags(value any) ([]string, bool) {
	switch v := value.(type) {
	case string:
		var tags []string

		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}

		return tags, true
	case []string:
		return v, true
	case []any:
		tags := make([]string, 0, len(v))

		for _, item := range v {
			tag, ok := item.(string)
			if !ok {
				return nil, false
			}

			tags = append(tags, tag)
		}

		return tags, true
	default:
		return nil, false
	}
}

func coerceAttributes(value any) (map[string]string, bool) {
	switch v := value.(type) {
	case map[string]string:
		return v, true
	case map[string]any:
		attrs := make(map[string]string, len(v))

		for key, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}

			attrs[key] = s
		}

		return attrs, true
	default:
		return nil, false
	}
}

func coerceAIDescription(value any) (models.AIDescription, bool) {
	switch v := value.(type) {
	case string:
		return models.AIDescription{Content: v}, true
	case map[string]any:
		content, ok := v["content"].(string)
		if !ok {
			return models.AIDescription{}, false
		}

		note := models.AIDescription{Content: content}

		if model, ok := v["model"].(string); ok {
			note.Model = model
		}

		if raw, ok := v["generatedAt"].(string); ok {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				note.GeneratedAt = ts
			}
		}

		return note, true
	default:
		return models.AIDescription{}, false
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}

		return b, true
	default:
		return false, false
	}
}

func validAmount(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
