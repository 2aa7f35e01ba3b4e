/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package version

import (
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strings"
	"time"
)

type vrs struct {
	lic License
	pkg string
	dsc string
	tme time.Time
	bld string
	rel string
	atr string
	pfx string
	fpt string // full reflected package path, unwalked
	rtp string // root package path after walking numSubPackage up
}

func newVersion(lic License, pkg, description, date, build, release, author, prefix string, i interface{}, numSubPackage int) *vrs {
	fpt := reflect.TypeOf(i).PkgPath()

	if pkg == "" || pkg == "noname" {
		pkg = lastPathSegment(fpt)
	}

	tme, err := time.Parse(time.RFC3339, date)
	if err != nil {
		tme = time.Now()
	}

	return &vrs{
		lic: lic,
		pkg: pkg,
		dsc: description,
		tme: tme,
		bld: build,
		rel: release,
		atr: author,
		pfx: strings.ToUpper(prefix),
		fpt: fpt,
		rtp: walkUpPath(fpt, numSubPackage),
	}
}

func lastPathSegment(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

func walkUpPath(path string, numSubPackage int) string {
	parts := strings.Split(path, "/")

	if numSubPackage <= 0 {
		return path
	} else if numSubPackage >= len(parts) {
		numSubPackage = len(parts) - 1
	}

	return strings.Join(parts[:len(parts)-numSubPackage], "/")
}

func (o *vrs) GetPackage() string {
	return o.pkg
}

func (o *vrs) GetDescription() string {
	return o.dsc
}

func (o *vrs) GetBuild() string {
	return o.bld
}

func (o *vrs) GetRelease() string {
	return o.rel
}

func (o *vrs) GetAuthor() string {
	return fmt.Sprintf("%s (source: %s)", o.atr, o.rtp)
}

func (o *vrs) GetPrefix() string {
	return o.pfx
}

func (o *vrs) GetDate() string {
	return o.tme.Format("2006-01-02 15:04:05 MST")
}

func (o *vrs) GetTime() time.Time {
	return o.tme
}

func (o *vrs) GetAppId() string {
	return fmt.Sprintf("%s-%s-%s (Runtime %s)", o.rel, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func (o *vrs) GetHeader() string {
	return fmt.Sprintf("%s %s (build %s)", o.pkg, o.rel, o.bld)
}

func (o *vrs) GetInfo() string {
	return fmt.Sprintf("Release: %s\nBuild: %s\nDate: %s\n", o.rel, o.bld, o.GetDate())
}

func (o *vrs) GetRootPackagePath() string {
	return o.rtp
}

func (o *vrs) PrintInfo() {
	_, _ = fmt.Fprintln(os.Stderr, o.GetHeader())
	_, _ = fmt.Fprintln(os.Stderr, o.GetInfo())
}

func (o *vrs) PrintLicense(lic ...License) {
	_, _ = fmt.Fprintln(os.Stderr, o.GetLicenseBoiler(lic...))
}
