package container_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

type SmtpMailer struct{ Host string }

func newLoaderContainer(t *testing.T) *container.Container {
	t.Helper()
	c := container.New()
	require.NoError(t, container.RegisterStruct[SmtpMailer](c, container.WithName("SmtpMailer")))
	require.NoError(t, container.RegisterStruct[Clock](c, container.WithName("clock")))
	return c
}

func TestLoadFile_YAML(t *testing.T) {
	c := newLoaderContainer(t)
	require.NoError(t, c.LoadFile(filepath.Join("testdata", "bindings.yaml")))

	assert.Equal(t,
		[]string{"container", "mailer", "clock", "retries", "limits", "hosts"},
		c.Bindings(),
		"document order is kept",
	)

	mailer, err := c.Get("mailer")
	require.NoError(t, err)
	assert.IsType(t, &SmtpMailer{}, mailer)

	clock, err := c.Get("clock")
	require.NoError(t, err)
	assert.IsType(t, &Clock{}, clock)

	retries, err := c.Get("retries")
	require.NoError(t, err)
	assert.Equal(t, 3, retries)

	limits, err := c.Get("limits")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"rps": 10, "burst": 20}, limits)

	hosts, err := c.Get("hosts")
	require.NoError(t, err)
	assert.Equal(t, []any{"db1", "db2"}, hosts)
}

func TestLoadFile_JSON(t *testing.T) {
	c := newLoaderContainer(t)
	require.NoError(t, c.LoadFile(filepath.Join("testdata", "bindings.json")))

	assert.Equal(t, []string{"container", "mailer", "clock", "retries", "limits"}, c.Bindings())

	mailer, err := c.Get("mailer")
	require.NoError(t, err)
	assert.IsType(t, &SmtpMailer{}, mailer)

	retries, err := c.Get("retries")
	require.NoError(t, err)
	assert.Equal(t, float64(3), retries)

	limits, err := c.Get("limits")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"rps": float64(10)}, limits)
}

func TestLoadFile_EmptyDocument(t *testing.T) {
	for _, file := range []string{"empty.yaml", "empty.json"} {
		t.Run(file, func(t *testing.T) {
			c := container.New()
			require.NoError(t, c.LoadFile(filepath.Join("testdata", file)))
			assert.Equal(t, []string{"container"}, c.Bindings())
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"missing file", "does-not-exist.yaml"},
		{"yaml syntax", "broken.yaml"},
		{"yaml sequence at top level", "sequence.yaml"},
		{"json array at top level", "array.json"},
		{"json syntax", "broken.json"},
		{"json content after the object", "trailing.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := container.New()
			err := c.LoadFile(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			assert.True(t, container.IsConfigLoad(err))
			assert.Equal(t, []string{"container"}, c.Bindings(), "nothing registered on failure")
		})
	}
}

func TestLoadBindings_SortedKeys(t *testing.T) {
	c := container.New()
	c.LoadBindings(map[string]any{
		"zeta":  "Z",
		"alpha": nil,
		"mid":   42,
	})

	assert.Equal(t, []string{"container", "alpha", "mid", "zeta"}, c.Bindings())

	got, err := c.Get("mid")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestInitialize_LoadsIntoDefault(t *testing.T) {
	container.ResetDefault()
	t.Cleanup(container.ResetDefault)

	require.NoError(t, container.Initialize(filepath.Join("testdata", "bindings.yaml")))
	assert.True(t, container.Default().Bound("mailer"))

	got, err := container.Get("retries")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}
