// Package iam implements user management: listing, creating, updating and
// deleting users together with their assigned roles.
//
// The package follows a layered design:
//
//   - Handle: chi HTTP handlers for the /api/users endpoints
//   - IamService: business rules (email uniqueness, role resolution,
//     password hashing)
//   - IamRepository: storage interface with a Postgres implementation
//     backed by generated queries and an in-memory implementation for
//     tests
//
// Write operations run inside a single transaction via WithTx so a failed
// role assignment never leaves a partially written user behind.
package iam
