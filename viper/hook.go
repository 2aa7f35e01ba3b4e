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
	libmap "github.com/go-viper/mapstructure/v2"
	spfvpr "github.com/spf13/viper"
)

// HookRegister appends a mapstructure decode hook applied on every Unmarshal,
// UnmarshalKey and UnmarshalExact call, in registration order.
func (o *vpr) HookRegister(hook libmap.DecodeHookFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if hook == nil {
		return
	}

	o.hooks = append(o.hooks, hook)
}

// HookReset drops every previously registered decode hook.
func (o *vpr) HookReset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.hooks = nil
}

func (o *vpr) decodeOption() spfvpr.DecoderConfigOption {
	o.mu.RLock()
	hooks := make([]libmap.DecodeHookFunc, len(o.hooks))
	copy(hooks, o.hooks)
	o.mu.RUnlock()

	return func(c *libmap.DecoderConfig) {
		if len(hooks) == 0 {
			return
		}

		c.DecodeHook = libmap.ComposeDecodeHookFunc(hooks...)
	}
}

func (o *vpr) Unmarshal(rawVal interface{}) error {
	return o.vpr.Unmarshal(rawVal, o.decodeOption())
}

func (o *vpr) UnmarshalKey(key string, rawVal interface{}) error {
	if !o.vpr.IsSet(key) {
		return ErrorParamMissing.Error(nil)
	}

	return o.vpr.UnmarshalKey(key, rawVal, o.decodeOption())
}

func (o *vpr) UnmarshalExact(rawVal interface{}) error {
	return o.vpr.UnmarshalExact(rawVal, o.decodeOption())
}
