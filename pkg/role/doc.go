// Package role lists the role catalog. Roles are seeded by migration and
// read-only from the API surface.
package role
