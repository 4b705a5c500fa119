package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeManifest(t, dir, "app.hcl", `
component "database" {
  factory     = "NewPostgresPool"
  role        = "infrastructure"
  description = "Primary connection pool."

  properties {
    dsn      = "postgres://localhost/app"
    max_conn = 20
  }
}

component "orders" {
  factory    = "NewOrderService"
  depends_on = ["database"]
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, []string{"database", "orders"}, model.Order)

	db := model.Components["database"]
	require.Equal(t, "NewPostgresPool", db.Factory)
	require.Equal(t, "infrastructure", db.Role)
	require.Equal(t, "Primary connection pool.", db.Description)
	require.Equal(t, cty.StringVal("postgres://localhost/app"), db.Properties["dsn"])
	require.Equal(t, cty.NumberIntVal(20), db.Properties["max_conn"])

	orders := model.Components["orders"]
	require.Equal(t, "ordinary", orders.Role, "role defaults to ordinary")
	require.Equal(t, []string{"database"}, orders.DependsOn)
	require.Nil(t, orders.Properties)
}

func TestLoad_DirectoryWalksSorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	// Written out of lexical order; loading must still be deterministic.
	writeManifest(t, dir, "z.hcl", `
component "svc" {
  factory = "NewSvcV2"
}
`)
	writeManifest(t, filepath.Join(dir, "sub"), "nested.hcl", `
component "nested" {
  factory = "NewNested"
}
`)
	writeManifest(t, dir, "a.hcl", `
component "svc" {
  factory = "NewSvcV1"
}
`)
	writeManifest(t, dir, "notes.txt", "not a manifest")

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	// a.hcl declares svc first, sub/nested.hcl adds nested, z.hcl
	// overwrites svc in place.
	require.Equal(t, []string{"svc", "nested"}, model.Order)
	require.Equal(t, "NewSvcV2", model.Components["svc"].Factory)
}

func TestLoad_MultiplePathsAndEmptyEntries(t *testing.T) {
	t.Parallel()

	dirA := t.TempDir()
	dirB := t.TempDir()
	writeManifest(t, dirA, "a.hcl", `
component "a" {
  factory = "NewA"
}
`)
	fileB := writeManifest(t, dirB, "b.hcl", `
component "b" {
  factory = "NewB"
}
`)

	model, err := NewLoader().Load(context.Background(), dirA, "", fileB)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, model.Order)
}

func TestLoad_NoManifestsYieldsEmptyModel(t *testing.T) {
	t.Parallel()

	model, err := NewLoader().Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, model.Order)
	require.Empty(t, model.Components)
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest path")
}

func TestLoad_MalformedHCL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "broken.hcl", `component "x" {`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoad_MissingRequiredFactory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "bad.hcl", `
component "x" {
  role = "ordinary"
}
`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode manifest")
}

func TestLoad_InvalidRole(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "bad.hcl", `
component "x" {
  factory = "NewX"
  role    = "primary"
}
`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid role "primary"`)
}

func TestLoad_PropertyMustBeConstant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "bad.hcl", `
component "x" {
  factory = "NewX"

  properties {
    value = some.reference
  }
}
`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "property 'value'")
}
