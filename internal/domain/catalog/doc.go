// Package catalog defines the catalog resources carried between stores
// (brands, categories, products), their creation payloads, and the
// source-to-destination identifier mappings produced while migrating them.
package catalog
