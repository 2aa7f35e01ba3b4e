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
	"strings"

	spfvpr "github.com/spf13/viper"
)

// Unset clears the given dotted keys, and any sub-keys nested below them,
// from the current configuration. Viper has no native removal primitive, so
// this rebuilds the in-memory config map with the targeted branches deleted
// and re-merges it into a fresh instance, preserving every other setting.
func (o *vpr) Unset(keys ...string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	settings := o.vpr.AllSettings()

	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		deleteKeyPath(settings, strings.Split(key, "."))
	}

	fresh := spfvpr.New()
	if err := fresh.MergeConfigMap(settings); err != nil {
		return ErrorConfigRead.Error(err)
	}

	if o.envPrefix != "" {
		fresh.SetEnvPrefix(o.envPrefix)
	}
	fresh.AutomaticEnv()

	o.vpr = fresh

	return nil
}

// deleteKeyPath removes the value addressed by parts from m, walking down
// nested maps. It is a no-op if any intermediate segment does not exist.
func deleteKeyPath(m map[string]interface{}, parts []string) {
	if len(parts) == 0 {
		return
	}

	key := lowerKey(m, parts[0])

	if len(parts) == 1 {
		delete(m, key)
		return
	}

	sub, ok := m[key]
	if !ok {
		return
	}

	nested, ok := sub.(map[string]interface{})
	if !ok {
		return
	}

	deleteKeyPath(nested, parts[1:])
}

// lowerKey returns the case-insensitive match for want among m's keys, since
// viper stores settings with lower-cased keys internally.
func lowerKey(m map[string]interface{}, want string) string {
	for k := range m {
		if strings.EqualFold(k, want) {
			return k
		}
	}
	return strings.ToLower(want)
}
