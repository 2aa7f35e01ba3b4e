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

// Package version carries build-time identity (package, release, build hash,
// author, license) for a binary and exposes it through a small read-only
// interface that cmd/cobra and config wire into --version output.
package version

import (
	"time"

	"github.com/nabbar/gsk/errors"
)

// Version exposes the build-time identity of a binary: the package it
// belongs to, its release/build coordinates, and its license terms.
type Version interface {
	GetPackage() string
	GetDescription() string
	GetBuild() string
	GetRelease() string
	GetAuthor() string
	GetPrefix() string
	GetDate() string
	GetTime() time.Time
	GetAppId() string
	GetHeader() string
	GetInfo() string
	GetRootPackagePath() string

	GetLicenseName() string
	GetLicenseLegal(lic ...License) string
	GetLicenseBoiler(lic ...License) string
	GetLicenseFull(lic ...License) string
	PrintInfo()
	PrintLicense(lic ...License)

	CheckGo(requiredVersion string, operator string) errors.Error
}

// NewVersion builds a Version instance. date is parsed as RFC3339; on parse
// failure the current time is used instead. i is any value living in the
// package the binary considers its root (typically an empty struct literal);
// numSubPackage walks that many directories up from i's reflected package
// path to compute GetRootPackagePath.
func NewVersion(lic License, pkg, description, date, build, release, author, prefix string, i interface{}, numSubPackage int) Version {
	return newVersion(lic, pkg, description, date, build, release, author, prefix, i, numSubPackage)
}
