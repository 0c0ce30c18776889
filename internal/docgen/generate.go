// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package docgen

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"icbcrm/internal/docname"
	"icbcrm/internal/models"
	"icbcrm/internal/placeholder"
)

// TemplateFinder is the slice of the template store the generator needs.
type TemplateFinder interface {
	FindByID(id uuid.UUID) (*models.Template, error)
}

// CustomerFinder is the slice of the customer store the generator needs.
type CustomerFinder interface {
	FindByID(id uuid.UUID) (*models.Customer, error)
}

// Generator orchestrates one generation call: fetch template and
// customer, build the substitution map, and dispatch to the OOXML engine
// or the HTML fallback. It holds no mutable state; concurrent calls are
// independent.
type Generator struct {
	templates TemplateFinder
	customers CustomerFinder
	now       func() time.Time
}

// NewGenerator creates a Generator reading from the given stores.
func NewGenerator(templates TemplateFinder, customers CustomerFinder) *Generator {
	return &Generator{
		templates: templates,
		customers: customers,
		now:       time.Now,
	}
}

// Generate produces a document for the (template, customer) pair. The
// two records are fetched concurrently, neither depends on the other,
// and both are validated before any substitution work begins so the
// caller always learns which entity was missing.
//
// Templates with a stored original binary go through the OOXML engine
// and yield FormatDocx output; templates without one fall back to the
// print-ready HTML renderer.
func (g *Generator) Generate(templateID, customerID uuid.UUID) (*models.GeneratedDocument, error) {
	var (
		tmpl *models.Template
		cust *models.Customer
		terr error
		cerr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tmpl, terr = g.templates.FindByID(templateID)
	}()
	go func() {
		defer wg.Done()
		cust, cerr = g.customers.FindByID(customerID)
	}()
	wg.Wait()

	if terr != nil {
		return nil, terr
	}
	if cerr != nil {
		return nil, cerr
	}
	if tmpl == nil {
		return nil, &NotFoundError{Entity: "template"}
	}
	if cust == nil {
		return nil, &NotFoundError{Entity: "customer"}
	}

	now := g.now()
	data := placeholder.FieldMap(cust, now)
	base := g.fileBase(tmpl, cust, now)

	if tmpl.HasOriginalFile() {
		content, err := Render(tmpl.FileData, data)
		if err != nil {
			return nil, err
		}
		return &models.GeneratedDocument{
			Content:  content,
			FileName: base + ".docx",
			Format:   models.FormatDocx,
		}, nil
	}

	page := PrintDocument(tmpl.Content, data)
	return &models.GeneratedDocument{
		Content:  []byte(page),
		FileName: base + ".html",
		Format:   models.FormatHTML,
	}, nil
}

// fileBase builds the suggested file name (without extension):
// "<template file base>-<customer code>-<YYYYMMDD>".
func (g *Generator) fileBase(tmpl *models.Template, cust *models.Customer, now time.Time) string {
	base := strings.TrimSuffix(tmpl.FileName, ".docx")
	if base == "" {
		base = tmpl.Name
	}
	return docname.Sanitize(base + "-" + cust.CustomerCode + "-" + now.Format("20060102"))
}
