// Package drive implements the cloud-storage collaborator: paginated listing
// of per-movie folders, exact-name file lookup, and streaming downloads from
// the Google Drive API. Permission and quota denials (HTTP 403) are
// classified as rate-limit conditions and never retried here.
package drive
