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

package db

import "strings"

// splitSQLStatements splits a migration script on top-level semicolons.
// Quoted strings, quoted identifiers and dollar-quoted bodies are kept
// intact; comments are dropped. Empty statements are omitted.
func splitSQLStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}

		current.Reset()
	}

	for i := 0; i < len(script); {
		rest := script[i:]

		switch {
		case strings.HasPrefix(rest, "--"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				i = len(script)
				continue
			}

			i += end
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				i = len(script)
				continue
			}

			i += end + 4
		case rest[0] == '\'' || rest[0] == '"':
			end := closingQuote(rest)
			current.WriteString(rest[:end])
			i += end
		case rest[0] == '$':
			tag := dollarTag(rest)
			if tag == "" {
				current.WriteByte('$')
				i++

				continue
			}

			end := strings.Index(rest[len(tag):], tag)
			if end < 0 {
				current.WriteString(rest)
				i = len(script)

				continue
			}

			body := len(tag) + end + len(tag)
			current.WriteString(rest[:body])
			i += body
		case rest[0] == ';':
			flush()
			i++
		default:
			current.WriteByte(rest[0])
			i++
		}
	}

	flush()

	return statements
}

// closingQuote returns the length of the quoted token at the start of s,
// treating a doubled quote character as an escape.
func closingQuote(s string) int {
	quote := s[0]

	for j := 1; j < len(s); j++ {
		if s[j] != quote {
			continue
		}

		if j+1 < len(s) && s[j+1] == quote {
			j++
			continue
		}

		return j + 1
	}

	return len(s)
}

// dollarTag returns the dollar-quote opener ($$ or $tag$) at the start of s,
// or "" when s starts with a positional parameter or a lone dollar sign.
func dollarTag(s string) string {
	for j := 1; j < len(s); j++ {
		c := s[j]

		switch {
		case c == '$':
			return s[:j+1]
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && j > 1:
		default:
			return ""
		}
	}

	return ""
}

// extractVersion returns the numeric prefix of a migration file name.
func extractVersion(filename string) string {
	version, _, _ := strings.Cut(filename, "_")

	return version
}
