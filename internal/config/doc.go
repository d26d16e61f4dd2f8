// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/taskr/config.cue (resolved with
// github.com/adrg/xdg, so macOS and Windows use their native locations) unless
// an explicit file is given. Values are validated against the embedded
// config_schema.cue and can be overridden with TASKR_* environment variables,
// e.g. TASKR_NPM_MANAGED=false.
package config
