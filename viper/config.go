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
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	loglvl "github.com/nabbar/gsk/logger/level"
)

// SetConfigFile registers the path later read by Config. Given an empty
// path, it falls back to a dotfile named after SetHomeBaseName in the user's
// home directory (".<basename>.json"); SetHomeBaseName must be set first.
func (o *vpr) SetConfigFile(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if path != "" {
		o.cfgFile = path
		o.vpr.SetConfigFile(path)
		return nil
	}

	if o.homeBaseName == "" {
		return ErrorBasePathNotFound.Error(nil)
	}

	home, err := homedir.Dir()
	if err != nil {
		return ErrorHomePathNotFound.Error(err)
	}

	path = filepath.Clean(home + string(filepath.Separator) + "." + strings.ToLower(o.homeBaseName) + ".json")
	o.cfgFile = path
	o.vpr.SetConfigFile(path)

	return nil
}

// Config loads the registered config file, falling back to the default
// config reader (SetDefaultConfig) when the file cannot be read, and enables
// environment-variable overrides via AutomaticEnv. lvl[0] sets the log level
// used for a successful load, lvl[1] for a failure/fallback; both default to
// loglvl.InfoLevel.
func (o *vpr) Config(lvl ...loglvl.Level) error {
	lvlOK, lvlKO := loglvl.InfoLevel, loglvl.InfoLevel
	if len(lvl) > 0 {
		lvlKO = lvl[0]
	}
	if len(lvl) > 1 {
		lvlOK = lvl[1]
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.envPrefix != "" {
		o.vpr.SetEnvPrefix(o.envPrefix)
	}
	o.vpr.AutomaticEnv()

	if o.remoteProvider != "" {
		if err := o.configRemote(); err != nil {
			return err
		}
	}

	err := o.vpr.ReadInConfig()
	lg := o.logger()

	if err == nil {
		if lg != nil {
			lg.Entry(lvlOK, "config loaded from file", o.cfgFile).Log()
		}
		return nil
	}

	if lg != nil {
		lg.Entry(lvlKO, "cannot read config file, trying default config", err).Log()
	}

	if o.defaultCfg == nil {
		return ErrorConfigRead.Error(err)
	}

	reader := o.defaultCfg()
	if reader == nil {
		return ErrorConfigRead.Error(err)
	}

	if e := o.vpr.ReadConfig(reader); e != nil {
		return ErrorConfigReadDefault.Error(e)
	}

	return ErrorConfigIsDefault.Error(err)
}

func (o *vpr) configRemote() error {
	var err error

	if o.remoteSecureKey != "" {
		err = o.vpr.AddSecureRemoteProvider(o.remoteProvider, o.remoteEndpoint, o.remotePath, o.remoteSecureKey)
	} else {
		err = o.vpr.AddRemoteProvider(o.remoteProvider, o.remoteEndpoint, o.remotePath)
	}

	if err != nil {
		if o.remoteSecureKey != "" {
			return ErrorRemoteProviderSecure.Error(err)
		}
		return ErrorRemoteProvider.Error(err)
	}

	if err = o.vpr.ReadRemoteConfig(); err != nil {
		return ErrorRemoteProviderRead.Error(err)
	}

	if o.remoteModel != nil {
		if err = o.vpr.Unmarshal(o.remoteModel); err != nil {
			return ErrorRemoteProviderMarshall.Error(err)
		}
	}

	if o.remoteReload != nil {
		go o.watchRemote()
	}

	return nil
}

func (o *vpr) watchRemote() {
	for {
		if err := o.vpr.WatchRemoteConfig(); err != nil {
			return
		}

		o.mu.RLock()
		reload := o.remoteReload
		o.mu.RUnlock()

		if reload != nil {
			reload()
		} else {
			return
		}
	}
}
