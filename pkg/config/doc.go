// Copyright 2025 walteh LLC
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

/*
Package config locates the cxp staging directory and loads user settings.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Finds the per-user data directory (XDG on unix, the platform
  equivalent elsewhere)
- Loads an optional config file from the per-user config directory
- Applies the CXP_DIR environment override

🔄 Flow:
1. LoadDefault looks for config.{yaml,yml,json,hcl} under $XDG_CONFIG_HOME/cxp
2. The matching Parser decodes it, rejecting unknown fields
3. ApplyEnv overrides data_dir from CXP_DIR
4. Validate normalizes the result

A missing config file is not an error: Default is used instead.

Example config.yaml:

	data_dir: /mnt/scratch/cxp
	lock: true
	color: never

Example config.hcl:

	data_dir = "${data_home}/cxp-work"
	quiet    = true
*/
package config
