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

// Package version carries build metadata injected with -ldflags "-X". Both values are logged by qdiscsim at startup
// and exported through the qdiscsim_info metric.
package version

var (
	// CommitSHA is the git commit the binary was built from.
	CommitSHA string

	// BuildRef is the branch or tag the build was triggered for.
	BuildRef string
)
