// Package model holds the catalog's data types.
//
// It defines the Product read model returned by the query side and the
// command payloads (CreateProductModel, UpdateProductModel) accepted by the
// command side. The HTTP layer only decodes payloads into these types; the
// command service is the one that validates them.
package model
