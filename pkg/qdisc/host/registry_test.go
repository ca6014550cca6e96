/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package host

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/discipline"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("ShouldStartEmpty", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		assert.Empty(t, r.IDs(), "a new registry must not register anything implicitly")
		_, err := r.Lookup(discipline.DisciplineName)
		assert.ErrorIs(t, err, ErrUnknownDiscipline)
	})

	t.Run("ShouldRegisterDefaults", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		require.NoError(t, RegisterDefaults(r))
		assert.Equal(t, []string{discipline.DisciplineName}, r.IDs())

		factory, err := r.Lookup(discipline.DisciplineName)
		require.NoError(t, err)
		q, err := factory(4, nil, logr.Discard(), nil, nil)
		require.NoError(t, err, "the registered factory should create an instance")
		assert.Equal(t, discipline.DisciplineName, q.Name())
	})

	t.Run("ShouldRejectDuplicate", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		require.NoError(t, RegisterDefaults(r))
		assert.ErrorIs(t, RegisterDefaults(r), ErrDuplicateDiscipline)
	})

	t.Run("ShouldRejectInvalidRegistration", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		assert.Error(t, r.Register("", discipline.NewQdisc), "an empty id must be rejected")
		assert.Error(t, r.Register("x", nil), "a nil factory must be rejected")
	})

	t.Run("ShouldUnregister", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		var stub contracts.Factory = func(int, map[string]string, logr.Logger, contracts.Observer,
			types.DisposeFunc) (contracts.Qdisc, error) {
			return nil, nil
		}
		require.NoError(t, r.Register("stub", stub))
		require.NoError(t, r.Unregister("stub"))
		_, err := r.Lookup("stub")
		assert.ErrorIs(t, err, ErrUnknownDiscipline, "lookup after unregister must fail")
		assert.ErrorIs(t, r.Unregister("stub"), ErrUnknownDiscipline, "a second unregister must fail")
	})
}
