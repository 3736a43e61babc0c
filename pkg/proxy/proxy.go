// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package proxy resolves build proxy settings from the environment.
package proxy

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/env"
)

const defaultNoProxy = "localhost"

// Properties describes a single proxy. User and Password are empty when the URL carries none.
type Properties struct {
	Protocol string
	Host     string
	Port     string
	User     string
	Password string
}

// Settings is the resolved proxy configuration. It is not modified after construction.
type Settings struct {
	Proxies []Properties
	NoProxy []string
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(string) (string, bool)

// FromEnv resolves settings from the process environment.
func FromEnv() (*Settings, error) {
	return New(os.LookupEnv)
}

// New resolves settings through lookup. http is resolved before https.
func New(lookup LookupFunc) (*Settings, error) {
	s := &Settings{}
	noProxy, ok := lookup(env.NoProxy)
	if !ok {
		noProxy = defaultNoProxy
	}
	for _, host := range strings.Split(noProxy, ",") {
		s.NoProxy = append(s.NoProxy, strings.TrimSpace(host))
	}

	for _, protocol := range []string{"http", "https"} {
		name := protocol + "_proxy"
		raw, ok := lookup(name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		p := Properties{
			Protocol: protocol,
			Host:     u.Hostname(),
			Port:     u.Port(),
		}
		if u.User != nil {
			p.User = u.User.Username()
			p.Password, _ = u.User.Password()
		}
		s.Proxies = append(s.Proxies, p)
	}
	return s, nil
}

// InUse reports whether an http or https proxy is configured. Empty values count as unset.
func InUse(lookup LookupFunc) bool {
	for _, name := range []string{env.HTTPProxy, env.HTTPSProxy} {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// GradleProperties renders the settings as Gradle system property arguments.
func GradleProperties(s *Settings) []string {
	var ret []string
	for _, p := range s.Proxies {
		ret = append(ret,
			fmt.Sprintf("-D%s.proxyHost=%s", p.Protocol, p.Host),
			fmt.Sprintf("-D%s.proxyPort=%s", p.Protocol, p.Port))
		if p.User != "" {
			ret = append(ret, fmt.Sprintf("-D%s.proxyUser=%s", p.Protocol, p.User))
		}
		if p.Password != "" {
			ret = append(ret, fmt.Sprintf("-D%s.proxyPassword=%s", p.Protocol, p.Password))
		}
		if len(s.NoProxy) > 0 {
			ret = append(ret, fmt.Sprintf("-D%s.nonProxyHosts=%s", p.Protocol, strings.Join(s.NoProxy, "|")))
		}
	}
	return ret
}

// GradleProxyArgs returns the Gradle proxy arguments for the process environment.
func GradleProxyArgs() ([]string, error) {
	s, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return GradleProperties(s), nil
}
