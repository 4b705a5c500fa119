package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fabricgo/internal/component"
	"github.com/vk/fabricgo/internal/event"
	"github.com/vk/fabricgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

type recorder struct {
	events []any
}

func (r *recorder) OnEvent(_ context.Context, ev any) {
	r.events = append(r.events, ev)
}

type greeter struct {
	Rec    *recorder `fab:"recorder"`
	Prefix string    `prop:"prefix"`
}

// testModule registers the Go factories the test manifests reference.
type testModule struct{}

func (testModule) Register(r *registry.Registry) {
	r.RegisterFactory("NewRecorder", &registry.RegisteredFactory{
		Type: reflect.TypeOf(&recorder{}),
		New: func(context.Context, component.Resolver) (any, error) {
			return &recorder{}, nil
		},
	})
	r.RegisterFactory("NewGreeter", &registry.RegisteredFactory{
		Type: reflect.TypeOf(&greeter{}),
		New: func(context.Context, component.Resolver) (any, error) {
			return &greeter{}, nil
		},
	})
}

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testModules(cfg *Config) []registry.Module {
	return append(coreModules(cfg), testModule{})
}

func TestAppRun_FullContainerLifecycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scanDir := t.TempDir()
	writeManifest(t, dir, "app.hcl", `
component "propertyPlaceholderResolver" {
  factory = "NewPropertyResolver"
  role    = "infrastructure"

  properties {
    env = "prod"
  }
}

component "recorder" {
  factory = "NewRecorder"
}

component "greeter" {
  factory    = "NewGreeter"
  depends_on = ["recorder"]

  properties {
    prefix = "hello-${env}"
  }
}
`)
	writeManifest(t, scanDir, "extra.hcl", `
component "extraRecorder" {
  factory = "NewRecorder"
}
`)

	cfg, err := NewConfig(Config{ComponentsPath: dir, ScanPath: scanDir})
	require.NoError(t, err)

	testApp, logBuf := SetupAppTest(t, cfg, testModules(cfg)...)
	require.NoError(t, testApp.Run(context.Background()))

	// Core infrastructure plus the three manifest components and the
	// scanned one.
	require.Equal(t, 6, testApp.Store().SingletonCount())

	instGreeter, ok := testApp.Store().Get("greeter")
	require.True(t, ok)
	instRecorder, ok := testApp.Store().Get("recorder")
	require.True(t, ok)

	g := instGreeter.(*greeter)
	require.Same(t, instRecorder, g.Rec, "tagged field gets the named component")
	require.Equal(t, "hello-prod", g.Prefix, "placeholder expands before property binding")

	require.True(t, testApp.Registry().Contains("extraRecorder"), "scan path definitions join the registry")

	// Both recorder components implement the listener capability.
	require.Equal(t, 2, testApp.Bus().ListenerCount())
	rec := instRecorder.(*recorder)
	require.Equal(t, []any{event.ContainerStarted{Components: 6}}, rec.events)

	require.NotContains(t, logBuf.String(), "not eligible for processing",
		"nothing ordinary may be created before the interceptor chain is complete")
}

func TestAppRun_IsIdempotentPerInstance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "app.hcl", `
component "recorder" {
  factory = "NewRecorder"
}
`)

	cfg, err := NewConfig(Config{ComponentsPath: dir})
	require.NoError(t, err)

	testApp, _ := SetupAppTest(t, cfg, testModules(cfg)...)
	require.NoError(t, testApp.Run(context.Background()))

	count := testApp.Store().SingletonCount()
	first, _ := testApp.Store().Get("recorder")

	require.NoError(t, testApp.Run(context.Background()))
	require.Equal(t, count, testApp.Store().SingletonCount())

	second, _ := testApp.Store().Get("recorder")
	require.Same(t, first, second)
}

func TestAppRun_ExternalExtensionRunsFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "app.hcl", `
component "recorder" {
  factory = "NewRecorder"
}

component "greeter" {
  factory = "NewGreeter"
}
`)

	cfg, err := NewConfig(Config{ComponentsPath: dir})
	require.NoError(t, err)

	testApp, _ := SetupAppTest(t, cfg, testModules(cfg)...)
	testApp.AddExtension(&prefixingExtension{prefix: "external"})
	require.NoError(t, testApp.Run(context.Background()))

	inst, ok := testApp.Store().Get("greeter")
	require.True(t, ok)
	require.Equal(t, "external", inst.(*greeter).Prefix)
}

// prefixingExtension rewrites the greeter definition before instantiation.
type prefixingExtension struct {
	prefix string
}

func (e *prefixingExtension) MutateRegistry(_ context.Context, reg *registry.Registry) error {
	if def := reg.Definition("greeter"); def != nil {
		if def.Properties == nil {
			def.Properties = map[string]cty.Value{}
		}
		def.Properties["prefix"] = cty.StringVal(e.prefix)
	}
	return nil
}

func (e *prefixingExtension) ConfigureFactory(context.Context, *registry.Registry) error {
	return nil
}

func TestNewApp_PanicsOnUnknownFactory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "app.hcl", `
component "ghost" {
  factory = "NewGhost"
}
`)

	cfg, err := NewConfig(Config{ComponentsPath: dir})
	require.NoError(t, err)

	require.Panics(t, func() {
		_, _ = SetupAppTest(t, cfg, testModules(cfg)...)
	})
}

func TestNewApp_PanicsOnMalformedManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "app.hcl", `component "x" {`)

	cfg, err := NewConfig(Config{ComponentsPath: dir})
	require.NoError(t, err)

	require.Panics(t, func() {
		_, _ = SetupAppTest(t, cfg, testModules(cfg)...)
	})
}

func TestNewConfig_RequiresComponentsPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ComponentsPath: "/etc/app"})
	require.NoError(t, err)
	require.Equal(t, "/etc/app", cfg.ComponentsPath)
}

func TestHealthHandler_ReportsCounters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "app.hcl", `
component "recorder" {
  factory = "NewRecorder"
}
`)

	cfg, err := NewConfig(Config{ComponentsPath: dir})
	require.NoError(t, err)

	testApp, _ := SetupAppTest(t, cfg, testModules(cfg)...)
	require.NoError(t, testApp.Run(context.Background()))

	rr := httptest.NewRecorder()
	testApp.healthHandler(rr, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, 200, rr.Code)
	require.Contains(t, rr.Body.String(), "OK components=4")
}
