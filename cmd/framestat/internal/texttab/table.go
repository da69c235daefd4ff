// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to build up
// a row at once.
type Table struct {
	rows [][]textCell
}

type textCell struct {
	value     string
	alignment align
}

// A CellOption sets the layout of one cell.
type CellOption func(c *textCell)

var (
	Left  CellOption = func(c *textCell) { c.alignment = alignLeft }
	Right CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) lpad(s string, w int) string {
	switch a {
	default:
		return s
	case alignRight:
		return fmt.Sprintf("%*s", w, s)
	}
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := textCell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	t.rows[r] = append(t.rows[r], c)
	return t
}

// Format lays out table t and writes it to w. Columns are separated
// by two spaces. Trailing empty cells are not printed.
func (t *Table) Format(w io.Writer) error {
	var ws []int
	for _, row := range t.rows {
		for col, cell := range row {
			if col >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(cell.value); n > ws[col] {
				ws[col] = n
			}
		}
	}

	for _, row := range t.rows {
		// Trim trailing empty cells so lines don't end in
		// spaces.
		for len(row) > 0 && strings.TrimSpace(row[len(row)-1].value) == "" {
			row = row[:len(row)-1]
		}
		var line strings.Builder
		for col, cell := range row {
			if col > 0 {
				line.WriteString("  ")
			}
			s := cell.alignment.lpad(cell.value, ws[col])
			if col < len(row)-1 {
				s += strings.Repeat(" ", ws[col]-utf8.RuneCountInString(s))
			}
			line.WriteString(s)
		}
		line.WriteString("\n")
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
