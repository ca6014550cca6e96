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

package discipline

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-logr/logr"

	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/contracts"
	"github.com/naveen-93/Buffer-Bloat-Mititagation/pkg/qdisc/types"
)

var _ contracts.Factory = NewQdisc

// NewQdisc is the `contracts.Factory` for this discipline with the default lane and admission policy.
func NewQdisc(capacity int, params map[string]string, logger logr.Logger, observer contracts.Observer,
	dispose types.DisposeFunc) (contracts.Qdisc, error) {
	return NewFactory()(capacity, params, logger, observer, dispose)
}

// NewFactory returns a `contracts.Factory` that creates instances with the given config options applied before the
// host-supplied capacity. No creation parameters are supported: any key in params is refused with
// `types.ErrInvalidParameter`.
func NewFactory(cfgOpts ...ConfigOption) contracts.Factory {
	return func(capacity int, params map[string]string, logger logr.Logger, observer contracts.Observer,
		dispose types.DisposeFunc) (contracts.Qdisc, error) {
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: unsupported option %q", types.ErrInvalidParameter,
				slices.Sorted(maps.Keys(params))[0])
		}
		cfg, err := NewConfig(append(slices.Clone(cfgOpts), WithCapacity(capacity))...)
		if err != nil {
			return nil, err
		}
		opts := []Option{WithDisposer(dispose)}
		if observer != nil {
			opts = append(opts, WithObserver(observer))
		}
		d, err := New(cfg, logger, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
