// Package testutil provides utilities for testing geoascii components.
//
// Key components:
//   - TestEnvironment: isolated XDG config and state directories per test
//   - Fixtures: small geometries, features and GeoJSON/KML documents
//   - WriteFile, Subdir, ReadOutput: datasource layout and output checks
//
// All test data is defined inline, not in external files.
package testutil
