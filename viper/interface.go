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

// Package viper wraps spf13/viper with the golib conventions: a logger-aware
// constructor, config.CodeError-based errors, decode-hook composition through
// go-viper/mapstructure, and a thin remote-provider facade so config components
// can load settings from file, environment or a remote KV store interchangeably.
package viper

import (
	"context"
	"io"
	"time"

	libmap "github.com/go-viper/mapstructure/v2"
	liblog "github.com/nabbar/gsk/logger"
	loglvl "github.com/nabbar/gsk/logger/level"
	spfvpr "github.com/spf13/viper"
)

// FuncViper is a function type returning a Viper instance, used by config
// components to retrieve the shared instance without importing a concrete type.
type FuncViper func() Viper

// Viper exposes configuration loading, typed getters, decode-hook registration
// and remote-provider wiring on top of a spf13/viper instance.
type Viper interface {
	// Viper returns the underlying spf13/viper instance for advanced use cases
	// not covered by this interface.
	Viper() *spfvpr.Viper

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	GetTime(key string) time.Time
	GetIntSlice(key string) []int
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	GetStringMapString(key string) map[string]string
	GetStringMapStringSlice(key string) map[string][]string

	// HookRegister adds a mapstructure decode hook (DecodeHookFuncType,
	// DecodeHookFuncKind or DecodeHookFuncValue) applied during Unmarshal.
	HookRegister(hook libmap.DecodeHookFunc)
	// HookReset clears every previously registered decode hook.
	HookReset()

	Unmarshal(rawVal interface{}) error
	UnmarshalKey(key string, rawVal interface{}) error
	UnmarshalExact(rawVal interface{}) error

	// Unset clears the given keys (and any sub-keys under them) from the
	// current configuration. With no keys given it is a no-op.
	Unset(keys ...string) error

	SetRemoteProvider(provider string)
	SetRemoteEndpoint(endpoint string)
	SetRemotePath(path string)
	SetRemoteSecureKey(key string)
	SetRemoteModel(model interface{})
	SetRemoteReloadFunc(fct func())

	SetHomeBaseName(name string)
	SetEnvVarsPrefix(prefix string)
	SetDefaultConfig(fct func() io.Reader)

	// SetConfigFile registers the path read by Config. An empty path falls
	// back to a dotfile named after SetHomeBaseName, looked up in the user's
	// home directory; SetHomeBaseName must have been called first.
	SetConfigFile(path string) error

	// Config loads the registered config file (or remote provider, if set),
	// falling back to the default config reader on read failure, and enables
	// environment-variable overrides. lvl optionally sets the level used for
	// the loading log entries: lvl[0] on success, lvl[1] on fallback/failure.
	Config(lvl ...loglvl.Level) error
}

// New builds a Viper instance bound to ctx and logging through log. If log is
// nil, a default logger bound to ctx is used instead.
func New(ctx context.Context, log liblog.FuncLog) Viper {
	if log == nil {
		log = func() liblog.Logger {
			return liblog.New(ctx)
		}
	}

	return &vpr{
		ctx: ctx,
		log: log,
		vpr: spfvpr.New(),
	}
}
