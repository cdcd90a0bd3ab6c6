// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"os"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned when an analyzer configuration cannot be read.
var ErrInvalidConfig = errors.NewKind("invalid analyzer config: %s")

// Config holds the options of an analyzer that can be set from a file:
//
//	debug: true
//	verbose: false
//	max_iterations: 100
//	sql_mode: ONLY_FULL_GROUP_BY
type Config struct {
	Debug         bool   `yaml:"debug"`
	Verbose       bool   `yaml:"verbose"`
	MaxIterations int    `yaml:"max_iterations"`
	SqlMode       string `yaml:"sql_mode"`
}

// ParseConfig reads a configuration from its YAML representation.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, ErrInvalidConfig.Wrap(err, err.Error())
	}
	if cfg.MaxIterations < 0 {
		return nil, ErrInvalidConfig.New("max_iterations must not be negative")
	}
	return &cfg, nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrInvalidConfig.Wrap(err, err.Error())
	}
	return ParseConfig(data)
}
