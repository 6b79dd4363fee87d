// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import "runtime"

// MaxWorkers caps the pool; PDF parsing is CPU and memory bound
const MaxWorkers = 16

// OptimalWorkerCount resolves the configured worker count. 0 means one
// worker per CPU core; the result never exceeds the number of documents.
func OptimalWorkerCount(requested, fileCount int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	if fileCount > 0 && workers > fileCount {
		workers = fileCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
