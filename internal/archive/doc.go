// Package archive writes submission documents to the output directory and
// bundles each sample's documents into a GNU tar archive.
//
// Files are written to a temporary name and renamed into place, so a
// reader never sees a half-written document or archive. A batch holds an
// advisory lock on the output directory for its whole duration.
package archive
