package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product, position int) (*domain.Product, error)
}

// CSVImporter reads storefront catalog CSV exports and upserts products.
// The first row for a product carries the product fields plus its first
// variant; continuation rows (empty slug) add further variants and images.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, productRepo: repo}
}

type csvRow struct {
	Slug           string
	Title          string
	Desc           string
	Cents          int64
	CompareCents   *int64
	Collections    []string
	Tags           []string
	Available      bool
	ImageURL       string
	VariantSKU     string
	VariantTitle   string
	VariantCents   int64
	VariantOptions []domain.SelectedOption
	VariantAvail   bool
}

// Run parses CSV rows and upserts products grouped by slug. Returns the
// number of products imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *domain.Product
		imported int
	)

	save := func() error {
		if current == nil {
			return nil
		}
		if err := i.save(ctx, current, imported); err != nil {
			return err
		}
		imported++
		current = nil
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Slug != "" {
			if err := save(); err != nil {
				return imported, err
			}
			p := productFromRow(row)
			current = &p
			continue
		}

		// Continuation rows belong to the current product.
		if current == nil {
			continue
		}
		if row.ImageURL != "" {
			current.Images = append(current.Images, domain.ProductImage{
				ID:  fmt.Sprintf("%s-img-%d", current.Slug, len(current.Images)+1),
				URL: row.ImageURL,
			})
		}
		if row.VariantSKU != "" {
			current.Variants = append(current.Variants, variantFromRow(current.Slug, row, len(current.Variants)))
		}
	}

	if err := save(); err != nil {
		return imported, err
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product, position int) error {
	if p.Slug == "" || p.Title == "" || p.PriceCents <= 0 {
		return fmt.Errorf("invalid product row (missing required fields) for slug %q", p.Slug)
	}
	if len(p.Variants) == 0 {
		return fmt.Errorf("product %q has no variants", p.Slug)
	}
	if _, err := i.productRepo.Upsert(ctx, *p, position); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Slug, err)
	}
	return nil
}

func productFromRow(row *csvRow) domain.Product {
	p := domain.Product{
		Slug:                row.Slug,
		Title:               row.Title,
		Description:         row.Desc,
		PriceCents:          row.Cents,
		CompareAtPriceCents: row.CompareCents,
		Collections:         row.Collections,
		Tags:                row.Tags,
		Available:           row.Available,
	}
	if row.ImageURL != "" {
		p.Images = []domain.ProductImage{{ID: row.Slug + "-img-1", URL: row.ImageURL}}
	}
	if row.VariantSKU != "" {
		p.Variants = []domain.ProductVariant{variantFromRow(row.Slug, row, 0)}
	}
	return p
}

func variantFromRow(slug string, row *csvRow, n int) domain.ProductVariant {
	cents := row.VariantCents
	if cents == 0 {
		cents = row.Cents
	}
	title := row.VariantTitle
	if title == "" {
		title = "Default"
	}
	return domain.ProductVariant{
		ID:         fmt.Sprintf("%s-var-%d", slug, n+1),
		Title:      title,
		PriceCents: cents,
		Available:  row.VariantAvail,
		SKU:        row.VariantSKU,
		Options:    row.VariantOptions,
	}
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	slug := pick(record, index, "slug")
	imageURL := pick(record, index, "image_url")
	variantSKU := pick(record, index, "variant_sku")
	if slug == "" && imageURL == "" && variantSKU == "" {
		return nil
	}

	row := &csvRow{
		Slug:         slug,
		Title:        pick(record, index, "title"),
		Desc:         pick(record, index, "description"),
		Collections:  splitList(pick(record, index, "collections")),
		Tags:         splitList(pick(record, index, "tags")),
		Available:    parseBool(pick(record, index, "available"), true),
		ImageURL:     imageURL,
		VariantSKU:   variantSKU,
		VariantTitle: pick(record, index, "variant_title"),
		VariantAvail: parseBool(pick(record, index, "variant_available"), true),
	}
	row.Cents, _ = strconv.ParseInt(pick(record, index, "price_cents"), 10, 64)
	row.VariantCents, _ = strconv.ParseInt(pick(record, index, "variant_price_cents"), 10, 64)
	if v := pick(record, index, "compare_at_price_cents"); v != "" {
		if cents, err := strconv.ParseInt(v, 10, 64); err == nil {
			row.CompareCents = &cents
		}
	}
	row.VariantOptions = parseOptions(pick(record, index, "variant_options"))
	return row
}

// parseOptions reads "Color=Red;Size=M" into ordered option pairs.
func parseOptions(raw string) []domain.SelectedOption {
	var options []domain.SelectedOption
	for _, pair := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		options = append(options, domain.SelectedOption{Name: name, Value: value})
	}
	return options
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ";") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
