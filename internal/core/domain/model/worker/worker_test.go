package worker_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker(t *testing.T) {
	t.Run("should create a worker with roles", func(t *testing.T) {
		id := kernel.NewUUID()

		w, err := worker.NewWorker(id, "picker@pharma.test", "Pat Picker",
			[]worker.Role{worker.RolePicker, worker.RolePacker})

		require.NoError(t, err)
		assert.True(t, id.IsEqual(w.ID()))
		assert.Equal(t, "picker@pharma.test", w.Email())
		assert.True(t, w.HasRole(worker.RolePicker))
		assert.True(t, w.HasRole(worker.RolePacker))
		assert.False(t, w.HasRole(worker.RoleDispatcher))
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		testCases := []struct {
			name  string
			id    kernel.UUID
			email string
			roles []worker.Role
		}{
			{"zero id", kernel.UUID{}, "picker@pharma.test", []worker.Role{worker.RolePicker}},
			{"empty email", kernel.NewUUID(), "", []worker.Role{worker.RolePicker}},
			{"unknown role", kernel.NewUUID(), "picker@pharma.test", []worker.Role{"janitor"}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := worker.NewWorker(tc.id, tc.email, "Pat Picker", tc.roles)

				require.Error(t, err)
			})
		}
	})
}

func TestRole_Validate(t *testing.T) {
	for _, r := range []worker.Role{worker.RolePicker, worker.RolePacker, worker.RoleDispatcher, worker.RoleSupervisor} {
		assert.NoError(t, r.Validate(), string(r))
	}

	err := worker.Role("Picker").Validate()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
