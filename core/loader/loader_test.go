package loader_test

import (
	"testing"

	"list-reconciler/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &stubFeature{name: "lists", enabled: true}
	off := &stubFeature{name: "integrity", enabled: false}

	mgr := loader.NewManager()
	mgr.Register(on)
	mgr.Register(off)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllErrors(t *testing.T) {
	t.Run("Load failure", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&stubFeature{name: "broken", enabled: true, err: assert.AnError})

		err := mgr.LoadAll(fiber.New())
		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorContains(t, err, "broken")
	})

	t.Run("Duplicate name", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&stubFeature{name: "lists", enabled: true})
		mgr.Register(&stubFeature{name: "lists", enabled: true})

		assert.ErrorContains(t, mgr.LoadAll(fiber.New()), "registered twice")
	})
}
