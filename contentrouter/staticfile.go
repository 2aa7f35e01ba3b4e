/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package contentrouter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/nabbar/gsk/buffer"
	"github.com/nabbar/gsk/httpheader"
	"github.com/nabbar/gsk/memstream"
	"github.com/nabbar/gsk/stream"
)

var ErrNotRegularFile = errors.New("contentrouter: fs_path is not a regular file")

type fileWatch struct {
	watcher *fsnotify.Watcher
}

// AddFile registers fsPath (a single file, a directory, or, for
// FileDirTree, a whole directory tree) to be served under path. For
// FileDir/FileDirTree, path acts as a prefix: the remainder of the
// request path is joined onto fsPath to resolve the file on disk.
// FileDirTree additionally starts an fsnotify watch over fsPath that
// invalidates cached MIME lookups under path when the tree changes.
func (r *Router) AddFile(servedPath, fsPath string, kind FileKind) error {
	switch kind {
	case FileExact:
		info, err := os.Stat(fsPath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return ErrNotRegularFile
		}
		r.AddHandler(ContentId{Path: servedPath}, serveFileHandler(fsPath, r), Append)
		return nil

	case FileDir, FileDirTree:
		info, err := os.Stat(fsPath)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.New("contentrouter: fs_path is not a directory")
		}

		recursive := kind == FileDirTree
		r.AddHandler(ContentId{PathPrefix: servedPath}, serveTreeHandler(servedPath, fsPath, recursive, r), Append)

		if recursive {
			r.watchTree(servedPath, fsPath)
		}
		return nil

	default:
		return errors.New("contentrouter: unknown file kind")
	}
}

func serveFileHandler(fsPath string, r *Router) HandlerFunc {
	return func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
		return serveDiskFile(req, fsPath, r)
	}
}

func serveTreeHandler(servedPath, fsRoot string, recursive bool, r *Router) HandlerFunc {
	return func(req *httpheader.Request, _ stream.Stream) (Result, *httpheader.Response, stream.Stream, error) {
		rel := strings.TrimPrefix(requestPath(req.URI), servedPath)
		rel = strings.TrimPrefix(rel, "/")

		if !recursive && strings.Contains(rel, "/") {
			return Chain, nil, nil, nil
		}
		if !r.IsPathSafe(rel) {
			return Error, nil, nil, errors.New("contentrouter: unsafe path")
		}

		fsPath := filepath.Join(fsRoot, filepath.FromSlash(rel))
		return serveDiskFile(req, fsPath, r)
	}
}

func serveDiskFile(req *httpheader.Request, fsPath string, r *Router) (Result, *httpheader.Response, stream.Stream, error) {
	info, err := os.Stat(fsPath)
	if err != nil || info.IsDir() {
		return Chain, nil, nil, nil
	}

	data, err := os.ReadFile(fsPath)
	if err != nil {
		return Error, nil, nil, err
	}

	resp := httpheader.NewResponse(req.Version, 200, "OK")
	resp.ContentLength = int64(len(data))
	resp.Connection = req.Connection
	if mt := r.MimeType(fsPath); mt != "" {
		if i := strings.IndexByte(mt, '/'); i >= 0 {
			resp.ContentType = &httpheader.ContentType{MediaType: httpheader.MediaType{Type: mt[:i], Subtype: mt[i+1:]}}
		}
	}

	content := memstream.NewBufferSource(buffer.NewFromBytes(data))
	return OK, resp, content, nil
}

func (r *Router) watchTree(servedPath, fsRoot string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}

	_ = filepath.Walk(fsRoot, func(p string, info os.FileInfo, err error) error {
		if err == nil && info.IsDir() {
			_ = w.Add(p)
		}
		return nil
	})

	r.mu.Lock()
	r.watchers = append(r.watchers, &fileWatch{watcher: w})
	r.mu.Unlock()

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				r.invalidateMimeCache(servedPath)
				if ev.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = w.Add(ev.Name)
					}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}
