/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import "strings"

// ServerDescriptor describes one configured code-analysis server.
// Credentials that are not configured are left empty.
type ServerDescriptor struct {
	URL      string `json:"url"`
	NiceName string `json:"nice_name,omitempty"`
	Username string `json:"username,omitempty" sensitive:"true"`
	Password string `json:"password,omitempty" sensitive:"true"`
	Token    string `json:"token,omitempty" sensitive:"true"`
}

// Collector is the identity of one configured collector instance. It is
// rebuilt from configuration at the start of every cycle.
type Collector struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Servers []ServerDescriptor `json:"servers"`
}

// HasServer reports whether url is one of the configured server endpoints.
func (c *Collector) HasServer(url string) bool {
	for i := range c.Servers {
		if c.Servers[i].URL == url {
			return true
		}
	}

	return false
}

// NiceNameFor returns the display name configured for the server at url,
// matched case-insensitively, or "" when there is none.
func (c *Collector) NiceNameFor(url string) string {
	for i := range c.Servers {
		if strings.EqualFold(c.Servers[i].URL, url) {
			return c.Servers[i].NiceName
		}
	}

	return ""
}

// ServerURLs returns the configured endpoints in order.
func (c *Collector) ServerURLs() []string {
	urls := make([]string, 0, len(c.Servers))
	for i := range c.Servers {
		urls = append(urls, c.Servers[i].URL)
	}

	return urls
}

// ServerCapabilities is the behavior selected for one server from its
// reported protocol version. It is resolved once per server per cycle.
type ServerCapabilities struct {
	Version       string `json:"version"`
	ChangeHistory bool   `json:"change_history"`
}
