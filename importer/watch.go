/*
Copyright 2025 Trident Authors

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

package importer

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/jplu/ctxres/qualifier"
)

// Watch re-imports the OS directory dir every time fsnotify reports a
// write, create, remove, or rename somewhere underneath it, sending the
// freshly rebuilt Catalog on the returned channel. It is additive sugar
// over Import for a long-running host (a dev server, a build watcher);
// the pure core never calls it and Import alone remains sufficient for
// one-shot imports from any fs.FS. The channel is closed, and the
// watcher released, when ctx-less callers close done.
//
// Watch performs one synchronous Import before watching begins, so the
// first value on the channel reflects the tree's state at call time.
func Watch(dir string, qualifiers *qualifier.Registry, done <-chan struct{}) (<-chan Catalog, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addRecursive(watcher, dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Catalog, 1)

	reimport := func() {
		catalog, _ := Import(os.DirFS(dir), ".", qualifiers)
		select {
		case out <- catalog:
		default:
			<-out
			out <- catalog
		}
	}
	reimport()

	go func() {
		defer watcher.Close()
		defer close(out)
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) && isDir(event.Name) {
					_ = watcher.Add(event.Name)
				}
				reimport()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

// addRecursive registers every directory under root with watcher:
// fsnotify watches are not recursive on their own.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
