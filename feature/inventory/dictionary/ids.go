package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Vendor is one vendor entry of a usb.ids or pci.ids table.
type Vendor struct {
	Name     string
	Products map[string]string
}

// IDTable maps hexadecimal vendor ids to vendors and their products.
type IDTable struct {
	Vendors map[string]Vendor
}

// ParseIDs reads the usb.ids/pci.ids text format. Parsing stops at the first
// class section ("C xx" lines); deeper indentation levels (interfaces, subsystems)
// are skipped.
func ParseIDs(r io.Reader) (*IDTable, error) {
	table := &IDTable{Vendors: make(map[string]Vendor)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "\t\t") {
			continue
		}
		if strings.HasPrefix(line, "\t") {
			if current == "" {
				continue
			}
			id, name, ok := splitIDLine(strings.TrimPrefix(line, "\t"))
			if ok {
				table.Vendors[current].Products[id] = name
			}
			continue
		}
		id, name, ok := splitIDLine(line)
		if !ok {
			// Class and language sections follow the vendor list.
			break
		}
		current = id
		table.Vendors[id] = Vendor{Name: name, Products: make(map[string]string)}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read id table: %w", err)
	}
	return table, nil
}

func splitIDLine(line string) (id, name string, ok bool) {
	if len(line) < 6 || !isHex(line[:4]) {
		return "", "", false
	}
	return strings.ToLower(line[:4]), strings.TrimSpace(line[4:]), true
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// Lookup resolves a vendor and product id pair. Ids are matched case-insensitively
// and may carry a "0x" prefix.
func (t *IDTable) Lookup(vendorID, productID string) (vendor, product string, ok bool) {
	v, found := t.Vendors[normalizeID(vendorID)]
	if !found {
		return "", "", false
	}
	return v.Name, v.Products[normalizeID(productID)], true
}

func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.TrimPrefix(id, "0x")
}

// Source opens the raw text of an id table.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// LazyIDTable loads its table from a Source on first use.
// Concurrent first lookups share one load.
type LazyIDTable struct {
	source Source

	group singleflight.Group
	mu    sync.RWMutex
	table *IDTable
}

// NewLazyIDTable creates a table that is loaded on first Lookup.
func NewLazyIDTable(source Source) *LazyIDTable {
	return &LazyIDTable{source: source}
}

// Load returns the table, reading the source once.
func (l *LazyIDTable) Load(ctx context.Context) (*IDTable, error) {
	l.mu.RLock()
	table := l.table
	l.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	v, err, _ := l.group.Do("load", func() (any, error) {
		l.mu.RLock()
		cached := l.table
		l.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		rc, err := l.source.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open id table %s: %w", l.source, err)
		}
		defer rc.Close()

		parsed, err := ParseIDs(rc)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.table = parsed
		l.mu.Unlock()
		return parsed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*IDTable), nil
}

// Lookup resolves a vendor/product pair. A table that fails to load behaves as empty.
func (l *LazyIDTable) Lookup(ctx context.Context, vendorID, productID string) (vendor, product string, ok bool) {
	table, err := l.Load(ctx)
	if err != nil {
		return "", "", false
	}
	return table.Lookup(vendorID, productID)
}
