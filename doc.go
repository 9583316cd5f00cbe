// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package figcon provides a simple synchronous, file backed
// configuration store over a generic document tree.
//
// A [Store] owns one document tree, always rooted at an object node,
// plus the filesystem path it was loaded from. Key level operations
// run purely in memory; [LoadOrDefault], [Store.Reload] and
// [Store.Save] are the only operations which touch the filesystem.
//
//	store, err := figcon.LoadOrDefault(ctx, "config.json")
//	if err != nil {
//	    return err
//	}
//	store.Set("listen_addr", value.String(":8080"))
//	err = store.Save(ctx)
package figcon
