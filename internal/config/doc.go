// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for hnvctl's user
// configuration. The configuration is a YAML document located via
// HNVCTL_CFG_FILE or in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/hnvctl.yaml or $HOME/.config/hnvctl.yaml
//   - Windows: %APPDATA%/hnvctl.yaml
//
// The hnv: section describes the network controller endpoint:
//
//	hnv:
//	  url: https://nc.example.com/
//	  username: admin
//	  https_allow_insecure: false
//	  https_ca_bundle: /etc/ssl/nc-ca.pem
//	  retry_count: 5
//	  retry_interval: 1s
//	  http_request_timeout: 30s
package config
