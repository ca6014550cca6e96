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

import "errors"

var (
	// ErrUnknownDiscipline is returned when an identifier is not present in the `Registry`.
	ErrUnknownDiscipline = errors.New("unknown queue discipline")

	// ErrDuplicateDiscipline is returned when registering an identifier that is already present.
	ErrDuplicateDiscipline = errors.New("queue discipline already registered")

	// ErrNoDiscipline is returned by device operations that require an attached discipline when none is attached.
	ErrNoDiscipline = errors.New("no queue discipline attached")

	// ErrDeviceExists is returned when adding a device whose name is already taken.
	ErrDeviceExists = errors.New("device already exists")

	// ErrUnknownDevice is returned when looking up a device that was never added.
	ErrUnknownDevice = errors.New("unknown device")
)
