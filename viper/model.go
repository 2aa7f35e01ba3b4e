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

package viper

import (
	"context"
	"io"
	"sync"
	"time"

	libmap "github.com/go-viper/mapstructure/v2"
	liblog "github.com/nabbar/gsk/logger"
	spfvpr "github.com/spf13/viper"
)

type vpr struct {
	mu sync.RWMutex

	ctx context.Context
	log liblog.FuncLog
	vpr *spfvpr.Viper

	hooks []libmap.DecodeHookFunc

	remoteProvider  string
	remoteEndpoint  string
	remotePath      string
	remoteSecureKey string
	remoteModel     interface{}
	remoteReload    func()

	homeBaseName string
	envPrefix    string
	cfgFile      string
	defaultCfg   func() io.Reader
}

func (o *vpr) Viper() *spfvpr.Viper {
	return o.vpr
}

func (o *vpr) GetBool(key string) bool {
	return o.vpr.GetBool(key)
}

func (o *vpr) GetString(key string) string {
	return o.vpr.GetString(key)
}

func (o *vpr) GetInt(key string) int {
	return o.vpr.GetInt(key)
}

func (o *vpr) GetInt32(key string) int32 {
	return o.vpr.GetInt32(key)
}

func (o *vpr) GetInt64(key string) int64 {
	return o.vpr.GetInt64(key)
}

func (o *vpr) GetUint(key string) uint {
	return o.vpr.GetUint(key)
}

func (o *vpr) GetUint16(key string) uint16 {
	return o.vpr.GetUint16(key)
}

func (o *vpr) GetUint32(key string) uint32 {
	return o.vpr.GetUint32(key)
}

func (o *vpr) GetUint64(key string) uint64 {
	return o.vpr.GetUint64(key)
}

func (o *vpr) GetFloat64(key string) float64 {
	return o.vpr.GetFloat64(key)
}

func (o *vpr) GetDuration(key string) time.Duration {
	return o.vpr.GetDuration(key)
}

func (o *vpr) GetTime(key string) time.Time {
	return o.vpr.GetTime(key)
}

func (o *vpr) GetIntSlice(key string) []int {
	return o.vpr.GetIntSlice(key)
}

func (o *vpr) GetStringSlice(key string) []string {
	return o.vpr.GetStringSlice(key)
}

func (o *vpr) GetStringMap(key string) map[string]interface{} {
	return o.vpr.GetStringMap(key)
}

func (o *vpr) GetStringMapString(key string) map[string]string {
	return o.vpr.GetStringMapString(key)
}

func (o *vpr) GetStringMapStringSlice(key string) map[string][]string {
	return o.vpr.GetStringMapStringSlice(key)
}

func (o *vpr) SetRemoteProvider(provider string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remoteProvider = provider
}

func (o *vpr) SetRemoteEndpoint(endpoint string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remoteEndpoint = endpoint
}

func (o *vpr) SetRemotePath(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remotePath = path
}

func (o *vpr) SetRemoteSecureKey(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remoteSecureKey = key
}

func (o *vpr) SetRemoteModel(model interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remoteModel = model
}

func (o *vpr) SetRemoteReloadFunc(fct func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.remoteReload = fct
}

func (o *vpr) SetHomeBaseName(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.homeBaseName = name
}

func (o *vpr) SetEnvVarsPrefix(prefix string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.envPrefix = prefix
}

func (o *vpr) SetDefaultConfig(fct func() io.Reader) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.defaultCfg = fct
}

func (o *vpr) logger() liblog.Logger {
	if o.log == nil {
		return nil
	} else if lg := o.log(); lg != nil {
		return lg
	}
	return nil
}
