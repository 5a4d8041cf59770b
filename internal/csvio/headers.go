package csvio

import "strings"

type ruleKind int

const (
	ruleRename ruleKind = iota
	ruleDrop
)

// HeaderRule says what to do with one raw CSV header: rename it to a
// canonical field, or drop the whole column. Headers without a rule pass
// through unchanged.
type HeaderRule struct {
	kind ruleKind
	name string
}

func Rename(field string) HeaderRule {
	return HeaderRule{kind: ruleRename, name: field}
}

func Drop() HeaderRule {
	return HeaderRule{kind: ruleDrop}
}

// HeaderMap maps a lower-cased, trimmed raw header to its rule. It is plain
// configuration handed to NewParser, so alternate mappings need no parser
// changes.
type HeaderMap map[string]HeaderRule

// Resolve returns the canonical field name for a raw header, or keep=false
// when the column must be ignored.
func (m HeaderMap) Resolve(raw string) (field string, keep bool) {
	trimmed := strings.TrimSpace(raw)

	rule, ok := m[strings.ToLower(trimmed)]
	if !ok {
		return trimmed, true
	}

	if rule.kind == ruleDrop {
		return "", false
	}

	return rule.name, true
}

// DefaultProductHeaders is the alias table used by the product import
// endpoint. The leading blank column and the barcode column of the supplier
// spreadsheets are intentionally ignored.
func DefaultProductHeaders() HeaderMap {
	return HeaderMap{
		"":                  Drop(),
		"barcode":           Drop(),
		"sku":               Rename("code"),
		"code":              Rename("code"),
		"product name":      Rename("name"),
		"brand":             Rename("brand"),
		"product category":  Rename("category"),
		"price":             Rename("price"),
		"ml":                Rename("volume"),
		"short description": Rename("shortDescription"),
		"description":       Rename("description"),
		"image url":         Rename("imageUrl"),
		"tags":              Rename("tags"),
		"stock":             Rename("stockQty"),
	}
}
