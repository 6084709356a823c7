// Package archive writes the raw document of each committed inventory to
// <item type>/<item id>.json, on disk or in the object storage bucket.
package archive
