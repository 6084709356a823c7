// Package dictionary provides the lookup services normalizers consult: canonical
// manufacturer names, OS architectures, USB and PCI vendor/product id tables, and
// regular-expression rules that rename, re-attribute or ignore software and printers.
//
// Id tables are loaded lazily and at most once, from the embedded copies, the file
// system or object storage.
package dictionary
