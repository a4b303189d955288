// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package reshape groups per-bit sample assignments back into their
// original multi-bit variables and renders the result as the JSON document
// spec.md §6 specifies. There is no analogue of this in dalzilio-rudd (its
// tests print Node values, not application-level bit-vectors); the bit-group
// naming convention and hex rendering are grounded on spec.md §4.5/§6
// directly, folding in original_source/srcs/solution_gen.cpp's
// reshape_solution for the exact MSB-first bit ordering.
package reshape

import (
	"encoding/json"

	"github.com/pku-liang/sv-sampler-lab/internal/aag"
	"github.com/pku-liang/sv-sampler-lab/internal/sampler"
)

// Value is one hexadecimal-rendered bit-group, matching the
// {"value": "<hex>"} objects of spec.md §6's JSON schema.
type Value struct {
	Value string `json:"value"`
}

// Document is the top-level JSON document spec.md §6 mandates: one
// "assignment_list" array, one entry per sample, each entry an array of
// Values in ascending original-variable order.
type Document struct {
	AssignmentList [][]Value `json:"assignment_list"`
}

// Build groups every sample's bits by the (X, Y) coordinates in names and
// renders each group as lowercase hex, producing the document cmd/solgen
// writes to the output file. names must be the same slice (same length, same
// order) the samples were drawn over.
func Build(samples []sampler.Sample, names []aag.InputName) Document {
	widths := bitWidths(names)
	doc := Document{AssignmentList: make([][]Value, len(samples))}
	for i, s := range samples {
		doc.AssignmentList[i] = hexRow(s, names, widths)
	}
	if doc.AssignmentList == nil {
		doc.AssignmentList = [][]Value{}
	}
	return doc
}

// bitWidths returns, for every original variable index X seen in names, one
// more than the largest bit position Y observed for it — the MSB-first
// width spec.md §4.5 requires before padding to a hex nibble boundary.
func bitWidths(names []aag.InputName) []int {
	maxX := -1
	for _, nm := range names {
		if nm.X > maxX {
			maxX = nm.X
		}
	}
	widths := make([]int, maxX+1)
	for _, nm := range names {
		if nm.Y+1 > widths[nm.X] {
			widths[nm.X] = nm.Y + 1
		}
	}
	return widths
}

func hexRow(s sampler.Sample, names []aag.InputName, widths []int) []Value {
	groups := make([][]bool, len(widths))
	for x, w := range widths {
		groups[x] = make([]bool, w)
	}
	for i, nm := range names {
		// Position Y is at index width-1-Y so the group reads MSB-first,
		// matching spec.md §4.5.
		groups[nm.X][widths[nm.X]-1-nm.Y] = s[i]
	}
	row := make([]Value, len(groups))
	for x, bits := range groups {
		row[x] = Value{Value: ToHex(bits)}
	}
	return row
}

// ToHex renders an MSB-first bit-vector as lowercase hexadecimal: left-pad
// to a multiple of 4 bits with zeros, convert nibble by nibble, then strip
// leading zero nibbles — but never strip the final, always-present digit,
// per spec.md §4.5's "always emitting at least 0" rule.
func ToHex(bits []bool) string {
	pad := (4 - len(bits)%4) % 4
	full := make([]bool, pad+len(bits))
	copy(full[pad:], bits)

	const digits = "0123456789abcdef"
	out := make([]byte, len(full)/4)
	for i := range out {
		nibble := 0
		for j := 0; j < 4; j++ {
			nibble <<= 1
			if full[i*4+j] {
				nibble |= 1
			}
		}
		out[i] = digits[nibble]
	}

	trimmed := 0
	for trimmed < len(out)-1 && out[trimmed] == '0' {
		trimmed++
	}
	return string(out[trimmed:])
}

// Marshal renders doc as indented UTF-8 JSON, matching spec.md §6's output
// contract exactly (the field order and indentation struct tags already
// produce).
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
