package theme_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/application/theme"
	"github.com/jhoicas/bau-portal/internal/infrastructure/storage"
)

func dark() bool  { return true }
func light() bool { return false }

func TestNewService_SinPreferencia_System(t *testing.T) {
	s, err := theme.NewService(context.Background(), storage.NewMemoryStore(), light)
	require.NoError(t, err)
	assert.Equal(t, theme.System, s.Theme())
	assert.False(t, s.IsDark())
}

func TestNewService_ValorInvalido_System(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), ports.KeyTheme, "sepia"))

	s, err := theme.NewService(context.Background(), kv, dark)
	require.NoError(t, err)
	assert.Equal(t, theme.System, s.Theme())
	assert.True(t, s.IsDark())
}

func TestSetTheme_PersisteYRestaura(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	s, err := theme.NewService(ctx, kv, nil)
	require.NoError(t, err)

	require.NoError(t, s.SetTheme(ctx, theme.Dark))
	assert.Equal(t, "dark", kv.Snapshot()[ports.KeyTheme])

	again, err := theme.NewService(ctx, kv, nil)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, again.Theme())
	assert.True(t, again.IsDark())
}

func TestSetTheme_Desconocido_Error(t *testing.T) {
	s, err := theme.NewService(context.Background(), storage.NewMemoryStore(), nil)
	require.NoError(t, err)
	assert.Error(t, s.SetTheme(context.Background(), "sepia"))
}

func TestToggle_DesdeSystemVaAlOpuesto(t *testing.T) {
	ctx := context.Background()

	s, err := theme.NewService(ctx, storage.NewMemoryStore(), dark)
	require.NoError(t, err)
	next, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, next)

	s, err = theme.NewService(ctx, storage.NewMemoryStore(), light)
	require.NoError(t, err)
	next, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, next)
}

func TestToggle_AlternaClaroOscuro(t *testing.T) {
	ctx := context.Background()
	s, err := theme.NewService(ctx, storage.NewMemoryStore(), dark)
	require.NoError(t, err)
	require.NoError(t, s.SetTheme(ctx, theme.Light))

	next, err := s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, next)

	next, err = s.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, next)
}
