// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package models defines the core entities of the ICB CRM: customers,
// staff members, document templates, and generated documents.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerCategory classifies a customer by sales pipeline stage.
type CustomerCategory string

const (
	CategoryPotential CustomerCategory = "potential"
	CategoryClosed    CustomerCategory = "closed"
	CategoryRegular   CustomerCategory = "regular"
	CategoryPromising CustomerCategory = "promising"
)

// categoryLabels maps each category to its Vietnamese display label.
var categoryLabels = map[CustomerCategory]string{
	CategoryPotential: "KH tiềm năng",
	CategoryClosed:    "KH đã chốt",
	CategoryRegular:   "KH thường",
	CategoryPromising: "KH khả quan",
}

// Categories lists all valid customer categories in display order.
var Categories = []CustomerCategory{
	CategoryPotential,
	CategoryClosed,
	CategoryRegular,
	CategoryPromising,
}

// Label returns the Vietnamese display label for the category.
func (c CustomerCategory) Label() string {
	return categoryLabels[c]
}

// Valid reports whether the category is one of the known values.
func (c CustomerCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Customer is the data-binding source for document generation. Every
// placeholder token in the catalog maps to one of its fields or to a
// value derived from them.
type Customer struct {
	ID                  uuid.UUID        `json:"id"`
	CustomerCode        string           `json:"customerCode"`
	Name                string           `json:"name"`
	TaxCode             string           `json:"taxCode"`
	BusinessLicenseDate string           `json:"businessLicenseDate"`
	Representative      string           `json:"representative"`
	Position            string           `json:"position"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	Address             string           `json:"address"`
	Category            CustomerCategory `json:"category"`
	Notes               string           `json:"notes,omitempty"`
	AssignedTo          *uuid.UUID       `json:"assignedTo,omitempty"`
	CreatedBy           string           `json:"createdBy"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}
