// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package results accumulates validated phones, first per document (page
// sets) and then across documents (provenance sets). Nothing is ever
// removed; merges only add pages and sources.
package results

import (
	"fmt"
	"sort"
	"strings"

	"fone-scan/internal/detector"
)

// DefaultPageLabel prefixes each page number in human-readable page lists
const DefaultPageLabel = "Página"

// DocumentPhone is one validated number as seen inside a single document
type DocumentPhone struct {
	Phone    string `json:"phone" yaml:"phone"`
	AreaCode string `json:"area_code" yaml:"area_code"`
	Pages    []int  `json:"pages" yaml:"pages"`
	Original string `json:"original" yaml:"original"` // First raw match that produced it
}

// DocumentResult groups the phones of one document by canonical number
type DocumentResult struct {
	Name   string
	phones map[string]*DocumentPhone
	order  []string
}

// NewDocumentResult creates an empty per-document accumulator
func NewDocumentResult(name string) *DocumentResult {
	return &DocumentResult{
		Name:   name,
		phones: make(map[string]*DocumentPhone),
	}
}

// Add records that phone was found on page. Pages form an ordered set.
func (d *DocumentResult) Add(phone detector.CanonicalPhone, page int, raw string) {
	existing, ok := d.phones[phone.Number]
	if !ok {
		d.phones[phone.Number] = &DocumentPhone{
			Phone:    phone.Number,
			AreaCode: phone.AreaCode,
			Pages:    []int{page},
			Original: raw,
		}
		d.order = append(d.order, phone.Number)
		return
	}
	existing.Pages = insertPage(existing.Pages, page)
}

// Len returns the number of distinct phones in the document
func (d *DocumentResult) Len() int {
	return len(d.phones)
}

// Get returns a copy of the entry for a canonical number
func (d *DocumentResult) Get(number string) (DocumentPhone, bool) {
	p, ok := d.phones[number]
	if !ok {
		return DocumentPhone{}, false
	}
	out := *p
	out.Pages = append([]int(nil), p.Pages...)
	return out, true
}

// Phones returns the document's phones in discovery order
func (d *DocumentResult) Phones() []DocumentPhone {
	out := make([]DocumentPhone, 0, len(d.order))
	for _, number := range d.order {
		p, _ := d.Get(number)
		out = append(out, p)
	}
	return out
}

func insertPage(pages []int, page int) []int {
	i := sort.SearchInts(pages, page)
	if i < len(pages) && pages[i] == page {
		return pages
	}
	pages = append(pages, 0)
	copy(pages[i+1:], pages[i:])
	pages[i] = page
	return pages
}

// FormatPages renders a page set as "Página 1, Página 3"
func FormatPages(pages []int, label string) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, fmt.Sprintf("%s %d", label, p))
	}
	return strings.Join(parts, ", ")
}

// Source is one provenance entry: a document and the pages it was seen on
type Source struct {
	Document    string `json:"document" yaml:"document"`
	Pages       string `json:"pages" yaml:"pages"`
	PageNumbers []int  `json:"page_numbers" yaml:"page_numbers"`
}

func (s Source) key() string {
	return s.Document + "\x00" + s.Pages
}

// PhoneRecord is the run-wide aggregate for one canonical number
type PhoneRecord struct {
	Phone    string   `json:"phone" yaml:"phone"`
	AreaCode string   `json:"area_code" yaml:"area_code"`
	Sources  []Source `json:"sources" yaml:"sources"`
}

// Results is the global phone mapping owned by a run
type Results struct {
	pageLabel string
	records   map[string]*PhoneRecord
	seen      map[string]map[string]struct{}
}

// New creates an empty global mapping. An empty label falls back to
// DefaultPageLabel.
func New(pageLabel string) *Results {
	if pageLabel == "" {
		pageLabel = DefaultPageLabel
	}
	return &Results{
		pageLabel: pageLabel,
		records:   make(map[string]*PhoneRecord),
		seen:      make(map[string]map[string]struct{}),
	}
}

// Merge folds one document's phones into the mapping. Provenance is a set
// keyed by (document name, page list), so merging an identical document
// twice adds nothing new.
func (r *Results) Merge(doc *DocumentResult) {
	if doc == nil {
		return
	}
	for _, p := range doc.Phones() {
		source := Source{
			Document:    doc.Name,
			Pages:       FormatPages(p.Pages, r.pageLabel),
			PageNumbers: p.Pages,
		}

		record, ok := r.records[p.Phone]
		if !ok {
			record = &PhoneRecord{Phone: p.Phone, AreaCode: p.AreaCode}
			r.records[p.Phone] = record
			r.seen[p.Phone] = make(map[string]struct{})
		}
		if _, dup := r.seen[p.Phone][source.key()]; dup {
			continue
		}
		r.seen[p.Phone][source.key()] = struct{}{}
		record.Sources = append(record.Sources, source)
	}
}

// Len returns the number of distinct phones
func (r *Results) Len() int {
	return len(r.records)
}

// Get returns a copy of the record for a canonical number
func (r *Results) Get(number string) (PhoneRecord, bool) {
	rec, ok := r.records[number]
	if !ok {
		return PhoneRecord{}, false
	}
	return copyRecord(rec), true
}

func copyRecord(rec *PhoneRecord) PhoneRecord {
	out := PhoneRecord{Phone: rec.Phone, AreaCode: rec.AreaCode}
	out.Sources = make([]Source, len(rec.Sources))
	copy(out.Sources, rec.Sources)
	return out
}

// Records returns every record sorted by (area code, phone)
func (r *Results) Records() []PhoneRecord {
	out := make([]PhoneRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AreaCode != out[j].AreaCode {
			return out[i].AreaCode < out[j].AreaCode
		}
		return out[i].Phone < out[j].Phone
	})
	return out
}

// Row is the flat, spreadsheet-shaped view of one provenance entry
type Row struct {
	Phone    string
	AreaCode string
	Document string
	Pages    string
}

// Rows flattens the mapping to one row per (phone, source), sorted by
// area code, phone, then document
func (r *Results) Rows() []Row {
	var rows []Row
	for _, rec := range r.Records() {
		sources := rec.Sources
		sort.SliceStable(sources, func(i, j int) bool {
			if sources[i].Document != sources[j].Document {
				return sources[i].Document < sources[j].Document
			}
			return sources[i].Pages < sources[j].Pages
		})
		for _, s := range sources {
			rows = append(rows, Row{
				Phone:    rec.Phone,
				AreaCode: rec.AreaCode,
				Document: s.Document,
				Pages:    s.Pages,
			})
		}
	}
	return rows
}
