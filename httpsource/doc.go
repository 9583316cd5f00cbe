// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package httpsource fetches config documents over HTTP.
//
// It is meant for seeding or extending a local store with remotely
// managed defaults:
//
//	remote, err := httpsource.Fetch(ctx, "https://config.internal/defaults.json")
//	if err != nil {
//	    return err
//	}
//	store.Merge("defaults", remote)
//
// Requests are retried with backoff and guarded by a circuit breaker.
package httpsource
